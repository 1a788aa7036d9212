package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/venue-master/admin-console/pkg/apiclient"
	bookingsvcs "github.com/venue-master/admin-console/services/booking/application/services"
	bookingmodels "github.com/venue-master/admin-console/services/booking/domain/models"
	bookingremote "github.com/venue-master/admin-console/services/booking/infrastructure/remote"
	facilitymodels "github.com/venue-master/admin-console/services/facility/domain/models"
	facilityremote "github.com/venue-master/admin-console/services/facility/infrastructure/remote"
	usermodels "github.com/venue-master/admin-console/services/user/domain/models"
	userremote "github.com/venue-master/admin-console/services/user/infrastructure/remote"
	venuemodels "github.com/venue-master/admin-console/services/venue/domain/models"
	venueremote "github.com/venue-master/admin-console/services/venue/infrastructure/remote"
)

// page holds the --limit/--offset flags shared by list commands.
type page struct {
	limit, offset int
}

func (p *page) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.limit, "limit", 100, "page size")
	cmd.Flags().IntVar(&p.offset, "offset", 0, "page offset")
}

// run wraps a command body that needs the signed-in client and prints its result.
func run(e *env, body func(cmd *cobra.Command, args []string, client apiclient.Doer) (any, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		client, err := e.client()
		if err != nil {
			return err
		}
		out, err := body(cmd, args, client)
		if err != nil {
			return err
		}
		if out == nil {
			return nil
		}
		return printJSON(cmd.OutOrStdout(), out)
	}
}

func newVenuesCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{Use: "venues", Short: "Manage venues"}

	var p page
	list := &cobra.Command{
		Use:   "list",
		Short: "List venues",
		Args:  cobra.NoArgs,
		RunE: run(e, func(cmd *cobra.Command, _ []string, c apiclient.Doer) (any, error) {
			return venueremote.NewVenueFacade(c).List(cmd.Context(), venuemodels.ListParams{Limit: p.limit, Offset: p.offset})
		}),
	}
	p.bind(list)

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a venue",
		Args:  cobra.ExactArgs(1),
		RunE: run(e, func(cmd *cobra.Command, args []string, c apiclient.Doer) (any, error) {
			return venueremote.NewVenueFacade(c).Get(cmd.Context(), args[0])
		}),
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a venue",
		Args:  cobra.ExactArgs(1),
		RunE: run(e, func(cmd *cobra.Command, args []string, c apiclient.Doer) (any, error) {
			return nil, venueremote.NewVenueFacade(c).Delete(cmd.Context(), args[0])
		}),
	}

	cmd.AddCommand(list, get, del)
	return cmd
}

func newFacilitiesCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{Use: "facilities", Short: "Manage facilities"}

	var (
		p       page
		venueID string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List facilities",
		Args:  cobra.NoArgs,
		RunE: run(e, func(cmd *cobra.Command, _ []string, c apiclient.Doer) (any, error) {
			return facilityremote.NewFacilityFacade(c).List(cmd.Context(), facilitymodels.ListParams{
				VenueID: venueID,
				Limit:   p.limit,
				Offset:  p.offset,
			})
		}),
	}
	p.bind(list)
	list.Flags().StringVar(&venueID, "venue", "", "only facilities of this venue")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a facility",
		Args:  cobra.ExactArgs(1),
		RunE: run(e, func(cmd *cobra.Command, args []string, c apiclient.Doer) (any, error) {
			return facilityremote.NewFacilityFacade(c).Get(cmd.Context(), args[0])
		}),
	}

	var from, to string
	schedule := &cobra.Command{
		Use:   "schedule <id>",
		Short: "Show a facility's opening schedule",
		Args:  cobra.ExactArgs(1),
		RunE: run(e, func(cmd *cobra.Command, args []string, c apiclient.Doer) (any, error) {
			return facilityremote.NewFacilityFacade(c).Schedule(cmd.Context(), args[0], facilitymodels.ScheduleParams{From: from, To: to})
		}),
	}
	schedule.Flags().StringVar(&from, "from", "", "first day (YYYY-MM-DD)")
	schedule.Flags().StringVar(&to, "to", "", "last day (YYYY-MM-DD)")

	cmd.AddCommand(list, get, schedule)
	return cmd
}

func newBookingsCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{Use: "bookings", Short: "Manage bookings"}

	var (
		p                          page
		status, userID, facilityID string
	)
	filters := func() (bookingmodels.ListParams, error) {
		params := bookingmodels.ListParams{
			UserID:     userID,
			FacilityID: facilityID,
			Status:     bookingmodels.Status(strings.ToUpper(status)),
			Limit:      p.limit,
			Offset:     p.offset,
		}
		if params.Status != "" && !params.Status.Valid() {
			return params, fmt.Errorf("unknown status %q", status)
		}
		return params, nil
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List bookings",
		Args:  cobra.NoArgs,
		RunE: run(e, func(cmd *cobra.Command, _ []string, c apiclient.Doer) (any, error) {
			params, err := filters()
			if err != nil {
				return nil, err
			}
			return bookingremote.NewBookingFacade(c).List(cmd.Context(), params)
		}),
	}
	p.bind(list)
	list.Flags().StringVar(&status, "status", "", "PENDING_PAYMENT, CONFIRMED, CANCELLED, COMPLETED or PAYMENT_RETRY")
	list.Flags().StringVar(&userID, "user", "", "only bookings of this user")
	list.Flags().StringVar(&facilityID, "facility", "", "only bookings of this facility")

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show booking statistics",
		Args:  cobra.NoArgs,
		RunE: run(e, func(cmd *cobra.Command, _ []string, c apiclient.Doer) (any, error) {
			return bookingremote.NewBookingFacade(c).Stats(cmd.Context(), bookingmodels.ListParams{UserID: userID, FacilityID: facilityID})
		}),
	}
	stats.Flags().StringVar(&userID, "user", "", "only bookings of this user")
	stats.Flags().StringVar(&facilityID, "facility", "", "only bookings of this facility")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a booking",
		Args:  cobra.ExactArgs(1),
		RunE: run(e, func(cmd *cobra.Command, args []string, c apiclient.Doer) (any, error) {
			return bookingremote.NewBookingFacade(c).Get(cmd.Context(), args[0])
		}),
	}

	confirm := &cobra.Command{
		Use:   "confirm <id>",
		Short: "Confirm a booking awaiting payment",
		Args:  cobra.ExactArgs(1),
		RunE: run(e, func(cmd *cobra.Command, args []string, c apiclient.Doer) (any, error) {
			return bookingsvcs.NewBookingService(bookingremote.NewBookingFacade(c)).Confirm(cmd.Context(), args[0])
		}),
	}

	cancel := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel a pending or confirmed booking",
		Args:  cobra.ExactArgs(1),
		RunE: run(e, func(cmd *cobra.Command, args []string, c apiclient.Doer) (any, error) {
			return bookingsvcs.NewBookingService(bookingremote.NewBookingFacade(c)).Cancel(cmd.Context(), args[0])
		}),
	}

	cmd.AddCommand(list, stats, get, confirm, cancel)
	return cmd
}

func newUsersCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{Use: "users", Short: "Manage user accounts"}

	var (
		p            page
		search, role string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: run(e, func(cmd *cobra.Command, _ []string, c apiclient.Doer) (any, error) {
			return userremote.NewUserFacade(c).List(cmd.Context(), usermodels.ListParams{
				Search: search,
				Role:   role,
				Limit:  p.limit,
				Offset: p.offset,
			})
		}),
	}
	p.bind(list)
	list.Flags().StringVar(&search, "search", "", "name or email fragment")
	list.Flags().StringVar(&role, "role", "", "only users holding this role")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a user",
		Args:  cobra.ExactArgs(1),
		RunE: run(e, func(cmd *cobra.Command, args []string, c apiclient.Doer) (any, error) {
			return userremote.NewUserFacade(c).Get(cmd.Context(), args[0])
		}),
	}

	roles := &cobra.Command{
		Use:   "roles <id> <role>...",
		Short: "Replace a user's roles",
		Args:  cobra.MinimumNArgs(2),
		RunE: run(e, func(cmd *cobra.Command, args []string, c apiclient.Doer) (any, error) {
			in := usermodels.RolesUpdate{Roles: make([]string, 0, len(args)-1)}
			for _, r := range args[1:] {
				in.Roles = append(in.Roles, strings.ToUpper(r))
			}
			if err := validateRoles(in); err != nil {
				return nil, err
			}
			return userremote.NewUserFacade(c).UpdateRoles(cmd.Context(), args[0], in.Roles)
		}),
	}

	activate := &cobra.Command{
		Use:   "activate <id>",
		Short: "Re-enable an account",
		Args:  cobra.ExactArgs(1),
		RunE: run(e, func(cmd *cobra.Command, args []string, c apiclient.Doer) (any, error) {
			return userremote.NewUserFacade(c).Activate(cmd.Context(), args[0])
		}),
	}

	deactivate := &cobra.Command{
		Use:   "deactivate <id>",
		Short: "Disable an account",
		Args:  cobra.ExactArgs(1),
		RunE: run(e, func(cmd *cobra.Command, args []string, c apiclient.Doer) (any, error) {
			return userremote.NewUserFacade(c).Deactivate(cmd.Context(), args[0])
		}),
	}

	cmd.AddCommand(list, get, roles, activate, deactivate)
	return cmd
}
