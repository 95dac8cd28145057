package integration_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/metinatakli/bus-booking-system/api"
	"github.com/metinatakli/bus-booking-system/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type AdminSuite struct {
	BaseSuite
}

func TestAdminSuite(t *testing.T) {
	suite.Run(t, new(AdminSuite))
}

// loggedInAs registers a user with the given role and returns its session.
func (s *AdminSuite) loggedInAs(email string, role domain.Role) *Client {
	t := s.T()

	client := s.newClient()
	client.Register(email)

	if role != domain.RoleCustomer {
		user, err := s.app.UserRepo.GetByEmail(context.Background(), email)
		require.NoError(t, err)

		user.Role = role
		require.NoError(t, s.app.UserRepo.Update(context.Background(), user))
	}

	require.Equal(t, http.StatusNoContent, client.Login(email, TestUserPassword))

	return client
}

func (s *AdminSuite) bookSeats(scheduleId int, labels ...string) api.BookingResponse {
	t := s.T()

	client := s.newClient()
	seatIds := seatIdsByLabel(t, s.app, scheduleId, labels...)

	status, _ := client.Hold(scheduleId, seatIds...)
	require.Equal(t, http.StatusOK, status)

	checkout := client.Checkout(scheduleId, seatIds...)
	status, booking := client.Book(scheduleId, checkout.CheckoutReference)
	require.Equal(t, http.StatusCreated, status)

	return booking
}

func (s *AdminSuite) TestAccessControl() {
	t := s.T()

	occupancyURL := fmt.Sprintf("/admin/schedules/%d/occupancy", TestScheduleId)
	cancelURL := "/admin/bookings/1/cancel"

	guest := s.newClient()
	status, _ := guest.Do(http.MethodGet, occupancyURL, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	customer := s.loggedInAs("customer@example.com", domain.RoleCustomer)
	status, _ = customer.Do(http.MethodGet, occupancyURL, nil)
	assert.Equal(t, http.StatusForbidden, status)

	support := s.loggedInAs("support@example.com", domain.RoleSupport)
	status, _ = support.Do(http.MethodGet, occupancyURL, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = support.Do(http.MethodPost, cancelURL, nil)
	assert.Equal(t, http.StatusForbidden, status)

	admin := s.loggedInAs("admin@example.com", domain.RoleAdmin)
	status, _ = admin.Do(http.MethodPost, cancelURL, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func (s *AdminSuite) TestOccupancyAndCancel() {
	t := s.T()

	booking := s.bookSeats(TestScheduleId, "1A", "1B")

	holder := s.newClient()
	status, _ := holder.Hold(TestScheduleId, seatIdsByLabel(t, s.app, TestScheduleId, "1D")...)
	require.Equal(t, http.StatusOK, status)

	admin := s.loggedInAs("admin@example.com", domain.RoleAdmin)

	var occupancy api.OccupancyResponse
	status = admin.DoJSON(http.MethodGet, fmt.Sprintf("/admin/schedules/%d/occupancy", TestScheduleId), nil, &occupancy)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, api.OccupancyResponse{
		ScheduleId: TestScheduleId,
		TotalSeats: 30,
		Available:  27,
		Held:       1,
		Booked:     2,
	}, occupancy)

	var list api.BookingListResponse
	status = admin.DoJSON(http.MethodGet, fmt.Sprintf("/admin/bookings?scheduleId=%d", TestScheduleId), nil, &list)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list.Bookings, 1)
	assert.Equal(t, booking.Reference, list.Bookings[0].Reference)
	assert.Nil(t, list.Bookings[0].AccessToken)

	var canceled api.BookingResponse
	status = admin.DoJSON(http.MethodPost, fmt.Sprintf("/admin/bookings/%d/cancel", booking.Id), nil, &canceled)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, api.Canceled, canceled.Status)
	assert.NotNil(t, canceled.CanceledAt)

	status, _ = admin.Do(http.MethodPost, fmt.Sprintf("/admin/bookings/%d/cancel", booking.Id), nil)
	assert.Equal(t, http.StatusConflict, status)

	// the canceled seats can be sold again
	rebooked := s.bookSeats(TestScheduleId, "1A")
	assert.Equal(t, api.Confirmed, rebooked.Status)
}
