package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-lead-keeper/internal/adapter"
	"github.com/MKhiriev/go-lead-keeper/internal/logger"
	"github.com/MKhiriev/go-lead-keeper/models"
)

type seedOptions struct {
	addr      string
	username  string
	password  string
	email     string
	firstName string
	lastName  string
	count     int
}

type seedResult struct {
	leads      int
	activities int
}

var (
	seedStatuses = []string{"new", "contacted", "qualified", "negotiation", models.LeadStatusClosed}
	seedSources  = []string{"website", "referral", "zillow", "open_house"}
	seedTypes    = []string{"call", "email", "meeting", "viewing"}
)

func newSeedCmd() *cobra.Command {
	opts := seedOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill a running server with demo leads",
		Long: `Register (or log in as) the operator account, create --count demo leads
in one request and attach one activity to each of them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.count < 1 {
				return fmt.Errorf("--count must be at least 1, got %d", opts.count)
			}

			log := logger.NewLogger("crmctl")
			client, err := adapter.NewHTTPCRMClient(opts.addr, timeout, log)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			result, err := runSeed(ctx, client, opts, time.Now().UTC())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created %d leads and %d activities\n", result.leads, result.activities)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "localhost:8080", "server address")
	cmd.Flags().StringVar(&opts.username, "username", "demo", "operator username")
	cmd.Flags().StringVar(&opts.password, "password", "demo-password", "operator password")
	cmd.Flags().StringVar(&opts.email, "email", "demo@example.com", "operator email used on registration")
	cmd.Flags().StringVar(&opts.firstName, "first-name", "Demo", "operator first name used on registration")
	cmd.Flags().StringVar(&opts.lastName, "last-name", "Operator", "operator last name used on registration")
	cmd.Flags().IntVar(&opts.count, "count", 10, "number of leads to create")

	return cmd
}

// runSeed signs in as the operator, registering the account first when it
// does not exist, and creates the demo data.
func runSeed(ctx context.Context, client adapter.CRMClient, opts seedOptions, now time.Time) (seedResult, error) {
	_, err := client.Register(ctx, models.UserCreate{
		Username:  opts.username,
		Email:     opts.email,
		Password:  opts.password,
		FirstName: opts.firstName,
		LastName:  opts.lastName,
	})
	if err != nil && !errors.Is(err, adapter.ErrConflict) {
		return seedResult{}, fmt.Errorf("register operator: %w", err)
	}

	if _, err = client.Login(ctx, models.Credentials{Username: opts.username, Password: opts.password}); err != nil {
		return seedResult{}, fmt.Errorf("login operator: %w", err)
	}

	leads, err := client.CreateLeads(ctx, demoLeads(opts.count, now))
	if err != nil {
		return seedResult{}, fmt.Errorf("create leads: %w", err)
	}

	result := seedResult{leads: len(leads)}
	for i, lead := range leads {
		created, err := client.AddActivities(ctx, lead.ID, []models.ActivityCreate{demoActivity(i, now)})
		if err != nil {
			return result, fmt.Errorf("add activity to lead %d: %w", lead.ID, err)
		}
		result.activities += len(created)
	}

	return result, nil
}

func demoLeads(count int, now time.Time) []models.LeadCreate {
	leads := make([]models.LeadCreate, 0, count)
	stamp := now.Unix()

	for i := range count {
		budgetMin := int64(100_000 + i*25_000)
		budgetMax := budgetMin + 150_000
		interest := fmt.Sprintf("%d-bedroom house", 1+i%4)

		leads = append(leads, models.LeadCreate{
			FirstName:        fmt.Sprintf("Lead%d", i+1),
			LastName:         "Demo",
			Email:            fmt.Sprintf("lead%d.%d@example.com", i+1, stamp),
			Phone:            fmt.Sprintf("+1-555-%04d", i+1),
			Status:           seedStatuses[i%len(seedStatuses)],
			Source:           seedSources[i%len(seedSources)],
			BudgetMin:        &budgetMin,
			BudgetMax:        &budgetMax,
			PropertyInterest: &interest,
		})
	}

	return leads
}

func demoActivity(i int, now time.Time) models.ActivityCreate {
	activityType := seedTypes[i%len(seedTypes)]
	date := models.NewDate(now.Year(), now.Month(), now.Day())
	duration := int64(15 + (i%4)*15)

	return models.ActivityCreate{
		ActivityType: activityType,
		Title:        fmt.Sprintf("Demo %s", activityType),
		Duration:     &duration,
		ActivityDate: &date,
	}
}
