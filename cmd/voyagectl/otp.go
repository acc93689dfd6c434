package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	otpCmd := &cobra.Command{Use: "otp", Short: "Phone verification"}

	sendCmd := &cobra.Command{
		Use:   "send PHONE",
		Short: "Send a verification code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := fmt.Sprintf("%s/api/otp/send", apiFlag)
			data, err := doPostJSON(url, map[string]interface{}{"phone": args[0]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	otpCmd.AddCommand(sendCmd)

	verifyCmd := &cobra.Command{
		Use:   "verify PHONE CODE",
		Short: "Verify a code",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := fmt.Sprintf("%s/api/otp/verify", apiFlag)
			data, err := doPostJSON(url, map[string]interface{}{"phone": args[0], "code": args[1]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	otpCmd.AddCommand(verifyCmd)

	rootCmd.AddCommand(otpCmd)
}
