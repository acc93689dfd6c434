package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	feedbackCmd := &cobra.Command{Use: "feedback", Short: "Trip feedback operations"}

	var userID, experience, comment string
	var rating int
	var recommend bool
	var highlights, improvements []string
	submitCmd := &cobra.Command{
		Use:   "submit TRIP_ID",
		Short: "Submit feedback for a trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" {
				return fmt.Errorf("--user required")
			}
			payload := map[string]interface{}{
				"userId":         userID,
				"rating":         rating,
				"experience":     experience,
				"wouldRecommend": recommend,
			}
			if len(highlights) > 0 {
				payload["highlights"] = highlights
			}
			if len(improvements) > 0 {
				payload["improvements"] = improvements
			}
			if comment != "" {
				payload["comment"] = comment
			}
			url := fmt.Sprintf("%s/api/trips/%s/feedback", apiFlag, args[0])
			data, err := doPostJSON(url, payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	submitCmd.Flags().StringVarP(&userID, "user", "u", "", "User ID (required)")
	submitCmd.Flags().IntVarP(&rating, "rating", "r", 0, "Rating 1-5 (required)")
	submitCmd.Flags().StringVarP(&experience, "experience", "e", "", "excellent|good|average|poor (required)")
	submitCmd.Flags().BoolVar(&recommend, "recommend", false, "Would recommend this trip")
	submitCmd.Flags().StringSliceVar(&highlights, "highlight", nil, "Trip highlight (repeatable)")
	submitCmd.Flags().StringSliceVar(&improvements, "improve", nil, "Improvement suggestion (repeatable)")
	submitCmd.Flags().StringVar(&comment, "comment", "", "Free-form comment")
	_ = submitCmd.MarkFlagRequired("user")
	_ = submitCmd.MarkFlagRequired("rating")
	_ = submitCmd.MarkFlagRequired("experience")
	feedbackCmd.AddCommand(submitCmd)

	getCmd := &cobra.Command{
		Use:   "get TRIP_ID",
		Short: "Get the latest feedback for a trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := fmt.Sprintf("%s/api/trips/%s/feedback", apiFlag, args[0])
			data, err := doGet(url)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	feedbackCmd.AddCommand(getCmd)

	historyCmd := &cobra.Command{
		Use:   "history USER_ID",
		Short: "List a user's feedback, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := fmt.Sprintf("%s/api/users/%s/feedback", apiFlag, args[0])
			data, err := doGet(url)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	feedbackCmd.AddCommand(historyCmd)

	rootCmd.AddCommand(feedbackCmd)

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Aggregate feedback statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("%s/api/feedback/stats", apiFlag))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	rootCmd.AddCommand(statsCmd)
}
