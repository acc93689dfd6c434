package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	var sessionID, userID string
	turnCmd := &cobra.Command{
		Use:   "turn UTTERANCE",
		Short: "Send one conversation turn",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if sessionID == "" {
				return fmt.Errorf("--session required")
			}
			payload := map[string]interface{}{"utterance": args[0]}
			if userID != "" {
				payload["userId"] = userID
			}
			url := fmt.Sprintf("%s/api/sessions/%s/turns", apiFlag, sessionID)
			data, err := doPostJSON(url, payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	turnCmd.Flags().StringVarP(&sessionID, "session", "s", "", "Session ID (required)")
	turnCmd.Flags().StringVarP(&userID, "user", "u", "", "User ID")
	_ = turnCmd.MarkFlagRequired("session")
	rootCmd.AddCommand(turnCmd)

	sessionCmd := &cobra.Command{Use: "session", Short: "Session operations"}

	getCmd := &cobra.Command{
		Use:   "get SESSION_ID",
		Short: "Get session slots by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := fmt.Sprintf("%s/api/sessions/%s", apiFlag, args[0])
			data, err := doGet(url)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	sessionCmd.AddCommand(getCmd)

	rootCmd.AddCommand(sessionCmd)
}
