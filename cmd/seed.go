package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/recoverydesk/recovery-console/internal/api"
	"github.com/recoverydesk/recovery-console/internal/model"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed sample clients and cases into the backend",
	Long: `Seed sample clients and recovery cases through the backend API.
This is useful for local testing against an empty tracker database.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, time.Minute)
	defer cancel()
	config := GetConfig()

	logger := log.New(cmd.OutOrStdout(), "[seed] ", log.LstdFlags)
	logger.Println("Seeding sample data...")

	apiClient := api.NewClient(api.Options{
		BaseURL: config.API.BaseURL,
		Logger:  logger,
	})

	sampleClients := []model.ClientCreate{
		{
			ClientName:    "Meridian Logistics",
			CompanyName:   "Meridian Logistics BV",
			City:          "Rotterdam",
			ContactPerson: "J. van Dam",
			Phone:         "+31 10 555 0134",
			Email:         "finance@meridian-logistics.example",
		},
		{
			ClientName:    "Halcyon Print",
			CompanyName:   "Halcyon Print & Media Ltd",
			City:          "Leeds",
			ContactPerson: "P. Whitmore",
			Phone:         "+44 113 555 0177",
			Email:         "accounts@halcyonprint.example",
		},
		{
			ClientName:    "Bluepeak Components",
			CompanyName:   "Bluepeak Components GmbH",
			City:          "Stuttgart",
			ContactPerson: "A. Keller",
			Phone:         "+49 711 555 0190",
			Email:         "ap@bluepeak.example",
		},
	}

	var created []model.Client
	for _, c := range sampleClients {
		client, err := apiClient.CreateClient(ctx, c)
		if err != nil {
			logger.Printf("Failed to create client %q: %s", c.ClientName, api.ErrorMessage(err, "create failed"))
			continue
		}
		logger.Printf("Created client %q (id=%d)", client.ClientName, client.ID)
		created = append(created, *client)
	}

	if len(created) == 0 {
		return fmt.Errorf("no clients created, skipping cases")
	}

	now := time.Now()
	notes := func(s string) *string { return &s }
	sampleCases := []model.CaseCreate{
		{
			ClientID:          created[0].ID,
			InvoiceNumber:     "INV-2025-0142",
			InvoiceAmount:     12450.00,
			InvoiceDate:       dateAgo(now, 90),
			DueDate:           dateAgo(now, 60),
			Status:            model.StatusInFollowUp,
			LastFollowUpNotes: notes("Called accounts payable, promised payment plan proposal by end of month."),
		},
		{
			ClientID:      created[0].ID,
			InvoiceNumber: "INV-2025-0198",
			InvoiceAmount: 830.50,
			InvoiceDate:   dateAgo(now, 45),
			DueDate:       dateAgo(now, 15),
			Status:        model.StatusNew,
		},
		{
			ClientID:          created[len(created)-1].ID,
			InvoiceNumber:     "INV-2025-0203",
			InvoiceAmount:     4275.25,
			InvoiceDate:       dateAgo(now, 120),
			DueDate:           dateAgo(now, 90),
			Status:            model.StatusPartiallyPaid,
			LastFollowUpNotes: notes("Received 50% payment, remainder due after dispute over delivery is settled."),
		},
	}

	var caseCount int
	for _, c := range sampleCases {
		kase, err := apiClient.CreateCase(ctx, c)
		if err != nil {
			logger.Printf("Failed to create case %q: %s", c.InvoiceNumber, api.ErrorMessage(err, "create failed"))
			continue
		}
		logger.Printf("Created case %q (id=%d)", kase.InvoiceNumber, kase.ID)
		caseCount++
	}

	logger.Printf("Seeding complete: %d clients, %d cases", len(created), caseCount)
	return nil
}

// dateAgo returns the calendar date n days before t.
func dateAgo(t time.Time, days int) model.Date {
	d := t.AddDate(0, 0, -days)
	return model.NewDate(d.Year(), d.Month(), d.Day())
}
