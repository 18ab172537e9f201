package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/recoverydesk/recovery-console/internal/api"
	"github.com/recoverydesk/recovery-console/internal/format"
	"github.com/recoverydesk/recovery-console/internal/model"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cases and clients",
	Long: `List cases and clients from the backend in a simple text format.
This command works in any terminal environment and provides an alternative
to the console interface when terminal capabilities are limited.

Examples:
  # List all cases
  recovery-console list cases

  # List cases awaiting follow-up, oldest due first
  recovery-console list cases --status "In Follow-up" --sort-by due_date --order asc

  # List all clients
  recovery-console list clients`,
	RunE: runList,
}

var (
	listStatus string
	listSortBy string
	listOrder  string
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listStatus, "status", "", `Filter cases by status (New, "In Follow-up", "Partially Paid", Closed)`)
	listCmd.Flags().StringVar(&listSortBy, "sort-by", "", "Sort cases by: due_date, invoice_date")
	listCmd.Flags().StringVar(&listOrder, "order", "", "Sort order: asc, desc")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()
	config := GetConfig()

	logger := log.New(os.Stderr, "[list] ", log.LstdFlags)
	apiClient := api.NewClient(api.Options{
		BaseURL: config.API.BaseURL,
		Logger:  logger,
	})

	targetType := "cases"
	if len(args) > 0 {
		targetType = strings.ToLower(args[0])
	}

	switch targetType {
	case "cases":
		filter, err := buildCaseFilter()
		if err != nil {
			return err
		}
		return listCases(ctx, apiClient, filter)
	case "clients":
		return listClients(ctx, apiClient)
	default:
		return fmt.Errorf("unknown list type: %s (use 'cases' or 'clients')", targetType)
	}
}

func buildCaseFilter() (model.CaseFilter, error) {
	var filter model.CaseFilter

	if listStatus != "" {
		if !model.Status(listStatus).Valid() {
			return filter, fmt.Errorf("invalid --status value %q", listStatus)
		}
		filter.Status = listStatus
	}
	switch listSortBy {
	case "", model.SortByDueDate, model.SortByInvoiceDate:
		filter.SortBy = listSortBy
	default:
		return filter, fmt.Errorf("invalid --sort-by value %q (use due_date or invoice_date)", listSortBy)
	}
	switch listOrder {
	case "", model.OrderAsc, model.OrderDesc:
		filter.Order = listOrder
	default:
		return filter, fmt.Errorf("invalid --order value %q (use asc or desc)", listOrder)
	}
	return filter, nil
}

func listCases(ctx context.Context, apiClient *api.Client, filter model.CaseFilter) error {
	cases, err := apiClient.ListCases(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to list cases: %s", api.ErrorMessage(err, "request failed"))
	}

	if len(cases) == 0 {
		fmt.Println("No cases found.")
		return nil
	}

	fmt.Printf("Found %d cases:\n\n", len(cases))

	for i, c := range cases {
		fmt.Printf("%d. [%s] %s\n", i+1, strings.ToUpper(string(c.Status)), c.InvoiceNumber)
		fmt.Printf("   ID: %d\n", c.ID)
		fmt.Printf("   Client: %s (%s)\n", c.Client.ClientName, c.Client.CompanyName)
		fmt.Printf("   Amount: %s\n", format.Currency(c.InvoiceAmount))
		fmt.Printf("   Invoice Date: %s\n", format.DateShort(c.InvoiceDate))
		fmt.Printf("   Due Date: %s\n", format.DateShort(c.DueDate))
		if notes := c.Notes(); notes != "" {
			fmt.Printf("   Notes: %s\n", notes)
		}
		fmt.Println()
	}

	return nil
}

func listClients(ctx context.Context, apiClient *api.Client) error {
	clients, err := apiClient.ListClients(ctx)
	if err != nil {
		return fmt.Errorf("failed to list clients: %s", api.ErrorMessage(err, "request failed"))
	}

	if len(clients) == 0 {
		fmt.Println("No clients found.")
		return nil
	}

	fmt.Printf("Found %d clients:\n\n", len(clients))

	for i, c := range clients {
		fmt.Printf("%d. %s (%s)\n", i+1, c.ClientName, c.CompanyName)
		fmt.Printf("   ID: %d\n", c.ID)
		fmt.Printf("   City: %s\n", c.City)
		fmt.Printf("   Contact: %s\n", c.ContactPerson)
		fmt.Printf("   Phone: %s\n", c.Phone)
		fmt.Printf("   Email: %s\n", c.Email)
		fmt.Println()
	}

	return nil
}
