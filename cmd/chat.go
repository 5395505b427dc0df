// Copyright (c) 2025 Solvex
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"ragflow/cli/internal/backend"
	apperr "ragflow/cli/internal/errors"
	"ragflow/cli/internal/session"
)

var chatConversation int64

// chatCmd groups the conversation commands. They all present the stored
// session token to the backend and never change the session themselves.
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask the RagFlow assistant questions with the stored session",
}

var chatSendCmd = &cobra.Command{
	Use:   "send <message>",
	Short: "Send a message and print the reply",
	Long: `Send a message to the assistant. Without --conversation a new
conversation is started; its id is printed so follow-ups can continue it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := storedToken()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		chat := backend.NewChat(cfg.APIURL, cfg.Timeout)
		msg := backend.ChatMessage{Message: strings.Join(args, " "), ConversationID: chatConversation}
		var reply backend.ChatReply
		err = withSpinner(cmd.ErrOrStderr(), "Waiting for the assistant", func() error {
			var err error
			reply, err = chat.Send(ctx, token, msg)
			return err
		})
		if err != nil {
			return presentChatError(err, "sending the message")
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, reply.Response)
		if reply.Citation != "" {
			fmt.Fprintf(out, "\nsource: %s\n", reply.Citation)
		}
		logger.Debug("chat reply received", logger.Args("conversation", reply.ConversationID))
		if chatConversation == 0 {
			pterm.Info.Printfln("Conversation %d. Continue it with --conversation %d", reply.ConversationID, reply.ConversationID)
		}
		return nil
	},
}

var chatHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List your conversations",
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := storedToken()
		if err != nil {
			return err
		}
		convs, err := backend.NewChat(cfg.APIURL, cfg.Timeout).History(cmd.Context(), token)
		if err != nil {
			return presentChatError(err, "loading the history")
		}
		out := cmd.OutOrStdout()
		if len(convs) == 0 {
			fmt.Fprintln(out, "No conversations yet.")
			return nil
		}
		for _, c := range convs {
			fmt.Fprintf(out, "%d\t%s\n", c.ID, c.Title)
		}
		return nil
	},
}

var chatShowCmd = &cobra.Command{
	Use:   "show <conversation-id>",
	Short: "Print the messages of one conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("conversation id %q is not a number", args[0])
		}
		token, err := storedToken()
		if err != nil {
			return err
		}
		msgs, err := backend.NewChat(cfg.APIURL, cfg.Timeout).Messages(cmd.Context(), token, id)
		if err != nil {
			return presentChatError(err, "loading the conversation")
		}
		out := cmd.OutOrStdout()
		for _, m := range msgs {
			fmt.Fprintf(out, "%s: %s\n", m.Role, m.Content)
		}
		return nil
	},
}

// storedToken reads the session token for one chat call.
func storedToken() (string, error) {
	sess, closeStore, err := openSession()
	if err != nil {
		return "", err
	}
	defer closeStore()

	token, ok := sess.Token()
	if !ok {
		pterm.Warning.Println("Not logged in.")
		loginHint{}.Navigate(session.LoginRoute)
		return "", errReported
	}
	return token, nil
}

// presentChatError treats a rejected token differently from rejected
// credentials: the stored token is kept and the user is sent to login.
func presentChatError(err error, action string) error {
	if apperr.Is(err, apperr.Unauthorized) {
		pterm.Error.Println("The server rejected the stored session token.")
		loginHint{}.Navigate(session.LoginRoute)
		return errReported
	}
	return presentError(err, action)
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.AddCommand(chatSendCmd, chatHistoryCmd, chatShowCmd)
	chatSendCmd.Flags().Int64VarP(&chatConversation, "conversation", "c", 0, "Continue an existing conversation")
}
