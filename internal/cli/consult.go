package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/agromarket/agromarket-go/internal/api"

	"github.com/spf13/cobra"
)

func newExpertsCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "experts", Short: "Find agricultural experts"}

	var query, specialization string
	search := &cobra.Command{
		Use:   "search",
		Short: "Search the expert directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "searching experts", func(ctx context.Context, a *app) ([]string, error) {
				experts, err := a.client.SearchExperts(ctx, query, map[string]string{"specialization": specialization})
				if err != nil {
					return nil, err
				}
				lines := make([]string, 0, len(experts))
				for _, e := range experts {
					lines = append(lines, fmt.Sprintf("%s  %-20s %-20s rating=%.1f", e.ID, e.Name, e.Specialization, e.Rating))
				}
				if len(lines) == 0 {
					lines = []string{"no experts found"}
				}
				return lines, nil
			})
		},
	}
	search.Flags().StringVar(&query, "query", "", "free-text search")
	search.Flags().StringVar(&specialization, "specialization", "", "filter by specialization")

	available := &cobra.Command{
		Use:   "available",
		Short: "List experts currently accepting consultations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "loading experts", func(ctx context.Context, a *app) ([]string, error) {
				experts, err := a.client.AvailableExperts(ctx)
				if err != nil {
					return nil, err
				}
				lines := make([]string, 0, len(experts))
				for _, e := range experts {
					lines = append(lines, fmt.Sprintf("%s  %-20s %s", e.ID, e.Name, e.Specialization))
				}
				if len(lines) == 0 {
					lines = []string{"no experts available"}
				}
				return lines, nil
			})
		},
	}

	cmd.AddCommand(search, available)
	return cmd
}

func newConsultCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "consult", Short: "Request and manage consultations"}

	var in api.ConsultOrderInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Request a consultation with an expert",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "requesting consultation", func(ctx context.Context, a *app) ([]string, error) {
				order, err := a.client.CreateConsultOrder(ctx, in)
				if err != nil {
					return nil, err
				}
				return []string{fmt.Sprintf("consultation %s requested (%s)", order.ID, order.Status)}, nil
			})
		},
	}
	create.Flags().StringVar(&in.ExpertID, "expert", "", "expert id")
	create.Flags().StringVar(&in.Subject, "subject", "", "consultation subject")
	create.Flags().StringVar(&in.Description, "description", "", "what you need help with")

	list := &cobra.Command{
		Use:   "list",
		Short: "List consultations assigned to you (expert accounts)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "loading consultations", func(ctx context.Context, a *app) ([]string, error) {
				orders, err := a.client.ExpertConsultOrders(ctx)
				if err != nil {
					return nil, err
				}
				lines := make([]string, 0, len(orders))
				for _, o := range orders {
					lines = append(lines, fmt.Sprintf("%s  %-10s  %s", o.ID, o.Status, o.Subject))
				}
				if len(lines) == 0 {
					lines = []string{"no consultations"}
				}
				return lines, nil
			})
		},
	}

	status := &cobra.Command{
		Use:   "status <order-id> <status>",
		Short: "Accept, reject or complete a consultation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "updating consultation", func(ctx context.Context, a *app) ([]string, error) {
				if err := a.client.UpdateConsultOrderStatus(ctx, args[0], args[1]); err != nil {
					return nil, err
				}
				return []string{fmt.Sprintf("consultation %s is now %s", args[0], args[1])}, nil
			})
		},
	}

	cmd.AddCommand(create, list, status)
	return cmd
}

func newVisitsCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "visits", Short: "Schedule and track farm visits"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List farm visits",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "loading visits", func(ctx context.Context, a *app) ([]string, error) {
				visits, err := a.client.FarmerVisits(ctx)
				if err != nil {
					return nil, err
				}
				lines := make([]string, 0, len(visits))
				for _, v := range visits {
					lines = append(lines, fmt.Sprintf("%s  %-10s  %s", v.ID, v.Status, v.ScheduledAt.Local().Format("2006-01-02 15:04")))
				}
				if len(lines) == 0 {
					lines = []string{"no visits scheduled"}
				}
				return lines, nil
			})
		},
	}

	var expertID, notes, when string
	schedule := &cobra.Command{
		Use:   "schedule",
		Short: "Request an expert visit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "scheduling visit", func(ctx context.Context, a *app) ([]string, error) {
				at, err := time.Parse("2006-01-02 15:04", when)
				if err != nil {
					return nil, fmt.Errorf("parse --at (want YYYY-MM-DD HH:MM): %w", err)
				}
				visit, err := a.client.CreateFarmerVisit(ctx, api.FarmerVisitInput{
					ExpertID:    expertID,
					ScheduledAt: at,
					Notes:       notes,
				})
				if err != nil {
					return nil, err
				}
				return []string{fmt.Sprintf("visit %s requested (%s)", visit.ID, visit.Status)}, nil
			})
		},
	}
	schedule.Flags().StringVar(&expertID, "expert", "", "expert id")
	schedule.Flags().StringVar(&when, "at", "", "visit time, YYYY-MM-DD HH:MM")
	schedule.Flags().StringVar(&notes, "notes", "", "notes for the expert")

	status := &cobra.Command{
		Use:   "status <visit-id> <status>",
		Short: "Update a visit's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "updating visit", func(ctx context.Context, a *app) ([]string, error) {
				if err := a.client.UpdateFarmerVisitStatus(ctx, args[0], args[1]); err != nil {
					return nil, err
				}
				return []string{fmt.Sprintf("visit %s is now %s", args[0], args[1])}, nil
			})
		},
	}

	cmd.AddCommand(list, schedule, status)
	return cmd
}
