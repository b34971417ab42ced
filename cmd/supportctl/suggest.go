package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/supportbrain/backend/internal/application/assist"
	"github.com/supportbrain/backend/internal/wire"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Draft a reply for a ticket",
	Long: `suggest runs retrieval and synthesis for one ticket. Pass --ticket to
read it from the helpdesk, or --body to draft from raw text.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		ticketID, _ := cmd.Flags().GetString("ticket")
		body, _ := cmd.Flags().GetString("body")
		email, _ := cmd.Flags().GetString("email")
		if ticketID == "" && body == "" {
			return fmt.Errorf("one of --ticket or --body is required")
		}

		return withServices(func(s *wire.Services) error {
			result, err := s.Assistant.Suggest(cmd.Context(), assist.SuggestRequest{
				OrgID:         org,
				TicketID:      ticketID,
				TicketBody:    body,
				CustomerEmail: email,
			})
			if err != nil {
				return err
			}
			if viper.GetBool("json") {
				return printJSON(result)
			}

			_, _ = okColor.Printf("confidence %.2f\n", result.Confidence)
			fmt.Println(result.Draft)
			if len(result.SourceReferences) > 0 {
				_, _ = warnColor.Println("sources: " + strings.Join(result.SourceReferences, ", "))
			}
			return nil
		})
	},
}

var searchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Show the closest knowledge chunks for a query",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		org, err := requireOrg()
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")

		return withServices(func(s *wire.Services) error {
			matches, err := s.Assistant.Search(cmd.Context(), org, args[0], limit)
			if err != nil {
				return err
			}
			if viper.GetBool("json") {
				return printJSON(matches)
			}
			for _, m := range matches {
				_, _ = okColor.Printf("%.3f ", m.Score)
				fmt.Printf("%s\n", m.Reference())
			}
			return nil
		})
	},
}

func init() {
	suggestCmd.Flags().String("ticket", "", "helpdesk ticket id")
	suggestCmd.Flags().String("body", "", "ticket text used when no ticket id is given")
	suggestCmd.Flags().String("email", "", "customer email for order lookups")
	searchCmd.Flags().Int("limit", 3, "number of matches")

	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(searchCmd)
}
