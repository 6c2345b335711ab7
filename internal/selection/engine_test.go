package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hessamz/seatmap-session/internal/layout"
	"github.com/hessamz/seatmap-session/internal/model"
	"github.com/hessamz/seatmap-session/internal/pricing"
)

// fakeNotifier records every published notice in order.
type fakeNotifier struct {
	notices []model.Notice
}

func (f *fakeNotifier) Publish(n model.Notice) { f.notices = append(f.notices, n) }

func (f *fakeNotifier) last() model.Notice {
	if len(f.notices) == 0 {
		return model.Notice{}
	}
	return f.notices[len(f.notices)-1]
}

func testStore(viewerID string) *layout.Store {
	gold := &model.Ticket{ID: 1, Name: "Gold", PriceCents: 50000}
	silver := &model.Ticket{ID: 2, Name: "Silver", PriceCents: 30000}
	l := &model.Layout{
		Sections: []*model.Section{
			{
				ID: 10, Name: "Orchestra", X: 0, Y: 100, Width: 400, Height: 200,
				Rows: []*model.Row{
					{
						ID: 100, Title: "A",
						Seats: []*model.Seat{
							{ID: 1, Number: "A5", X: 20, Y: 120, Radius: 10, Status: model.StatusAvailable, Ticket: gold},
							{ID: 2, Number: "A6", X: 50, Y: 120, Radius: 10, Status: model.StatusAvailable, Ticket: gold},
							{ID: 3, Number: "A7", X: 80, Y: 120, Radius: 10, Status: model.StatusAvailable, Ticket: silver},
							{ID: 4, Number: "A8", X: 110, Y: 120, Radius: 10, Status: model.StatusBooked, Ticket: gold},
							{ID: 5, Number: "A9", X: 140, Y: 120, Radius: 10, Status: model.StatusHold, HoldBy: "someone-else", Ticket: gold},
							{ID: 6, Number: "", X: 170, Y: 120, Radius: 10, Status: model.StatusBlank},
							{ID: 7, Number: "A11", X: 200, Y: 120, Radius: 10, Status: model.StatusAvailable},
						},
					},
				},
			},
		},
	}
	return layout.New(l, viewerID)
}

func newTestEngine(maxSeats int) (*Engine, *layout.Store, *fakeNotifier) {
	store := testStore("viewer-1")
	notifier := &fakeNotifier{}
	cfg := Config{
		MaxSeats:        maxSeats,
		HoldDurationSec: 600,
		Pricing:         pricing.Config{Type: pricing.FeeFlat, FlatCents: 2000},
	}
	return New(cfg, store, "viewer-1", notifier), store, notifier
}

func TestClickRejectsUnselectable(t *testing.T) {
	tests := []struct {
		name   string
		seatID uint64
		err    error
	}{
		{"unknown seat", 999, ErrUnknownSeat},
		{"booked seat", 4, ErrSeatUnavailable},
		{"held by another viewer", 5, ErrSeatUnavailable},
		{"blank filler", 6, ErrNoTicket},
		{"no ticket attached", 7, ErrNoTicket},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, store, notifier := newTestEngine(10)
			_, err := e.HandleSeatClick(tt.seatID)
			assert.ErrorIs(t, err, tt.err)
			assert.Empty(t, e.Lines())
			assert.False(t, e.Timer().Active)
			assert.Empty(t, notifier.notices)
			if seat, ok := store.Seat(tt.seatID); ok {
				assert.NotEqual(t, model.StatusSelected, seat.Status)
			}
		})
	}
}

func TestClickSelectsAndPrices(t *testing.T) {
	e, store, notifier := newTestEngine(10)

	seat, err := e.HandleSeatClick(1)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSelected, seat.Status)

	stored, _ := store.Seat(1)
	assert.Equal(t, model.StatusSelected, stored.Status)

	require.Len(t, e.Lines(), 1)
	line := e.Lines()[0]
	assert.Equal(t, uint64(1), line.TicketID)
	assert.Equal(t, uint32(1), line.Quantity)
	assert.Equal(t, uint32(50000), line.BaseCents)
	assert.Equal(t, uint32(2000), line.FeeCents)
	assert.Equal(t, uint32(180), line.CentralGSTCents)
	assert.Equal(t, uint32(180), line.StateGSTCents)
	assert.Equal(t, uint32(52360), line.FinalCents)
	assert.Equal(t, uint64(52360), line.TotalFinalCents)

	assert.True(t, e.Timer().Active)
	assert.Equal(t, 600, e.Timer().RemainingSeconds)

	n := notifier.last()
	assert.Equal(t, model.NoticeSelection, n.Kind)
	assert.Equal(t, "1 seats selected", n.Message)
}

func TestClickGroupsByTicketType(t *testing.T) {
	e, _, _ := newTestEngine(10)

	for _, id := range []uint64{1, 2, 3} {
		_, err := e.HandleSeatClick(id)
		require.NoError(t, err)
	}

	require.Len(t, e.Lines(), 2)
	gold := e.Lines()[0]
	assert.Equal(t, uint32(2), gold.Quantity)
	assert.Equal(t, uint64(2*52360), gold.TotalFinalCents)

	silver := e.Lines()[1]
	assert.Equal(t, uint32(1), silver.Quantity)
	assert.Equal(t, uint32(30000), silver.BaseCents)

	assert.Equal(t, 3, e.SelectedCount())
	assert.Equal(t, uint64(2*52360)+silver.TotalFinalCents, e.TotalFinalCents())
}

func TestClickTogglesOff(t *testing.T) {
	e, store, _ := newTestEngine(10)

	_, err := e.HandleSeatClick(1)
	require.NoError(t, err)
	_, err = e.HandleSeatClick(2)
	require.NoError(t, err)

	seat, err := e.HandleSeatClick(1)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAvailable, seat.Status)

	require.Len(t, e.Lines(), 1)
	assert.Equal(t, uint32(1), e.Lines()[0].Quantity)
	assert.False(t, e.Lines()[0].Contains(1))
	assert.True(t, e.Timer().Active)

	// Unselecting the last seat empties the lines and stops the countdown.
	_, err = e.HandleSeatClick(2)
	require.NoError(t, err)
	assert.Empty(t, e.Lines())
	assert.False(t, e.Timer().Active)

	stored, _ := store.Seat(2)
	assert.Equal(t, model.StatusAvailable, stored.Status)
}

func TestSelectionLimit(t *testing.T) {
	e, store, notifier := newTestEngine(2)

	_, err := e.HandleSeatClick(1)
	require.NoError(t, err)
	_, err = e.HandleSeatClick(2)
	require.NoError(t, err)

	_, err = e.HandleSeatClick(3)
	assert.ErrorIs(t, err, ErrSelectionLimit)
	assert.Equal(t, 2, e.SelectedCount())

	seat, _ := store.Seat(3)
	assert.Equal(t, model.StatusAvailable, seat.Status)

	n := notifier.last()
	assert.Equal(t, model.NoticeLimit, n.Kind)
	assert.Contains(t, n.Message, "2")

	// Toggling one off frees a slot again.
	_, err = e.HandleSeatClick(1)
	require.NoError(t, err)
	_, err = e.HandleSeatClick(3)
	require.NoError(t, err)
	assert.Equal(t, 2, e.SelectedCount())
}

func TestTickExpiresSelection(t *testing.T) {
	e, store, notifier := newTestEngine(10)

	assert.False(t, e.Tick(), "tick must be a no-op while nothing is selected")

	_, err := e.HandleSeatClick(1)
	require.NoError(t, err)
	_, err = e.HandleSeatClick(2)
	require.NoError(t, err)

	for i := 0; i < 599; i++ {
		assert.False(t, e.Tick())
	}
	assert.Equal(t, 1, e.Timer().RemainingSeconds)

	assert.True(t, e.Tick())

	assert.Empty(t, e.Lines())
	assert.False(t, e.Timer().Active)
	assert.Equal(t, 600, e.Timer().RemainingSeconds)
	for _, id := range []uint64{1, 2} {
		seat, _ := store.Seat(id)
		assert.Equal(t, model.StatusAvailable, seat.Status)
	}

	n := notifier.last()
	assert.Equal(t, model.NoticeExpired, n.Kind)

	assert.False(t, e.Tick(), "timer stays stopped after expiry")
}

func TestTimerRestartsOnFreshSelection(t *testing.T) {
	e, _, _ := newTestEngine(10)

	_, err := e.HandleSeatClick(1)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		e.Tick()
	}
	assert.Equal(t, 500, e.Timer().RemainingSeconds)

	// Adding a seat to an existing selection does not restart the countdown.
	_, err = e.HandleSeatClick(2)
	require.NoError(t, err)
	assert.Equal(t, 500, e.Timer().RemainingSeconds)

	// Emptying the selection and selecting anew does.
	e.Clear()
	_, err = e.HandleSeatClick(1)
	require.NoError(t, err)
	assert.Equal(t, 600, e.Timer().RemainingSeconds)
}

func TestUpdateSeatsByIDsStripsOwnSeats(t *testing.T) {
	e, store, _ := newTestEngine(10)

	_, err := e.HandleSeatClick(1)
	require.NoError(t, err)
	_, err = e.HandleSeatClick(2)
	require.NoError(t, err)

	lost := e.UpdateSeatsByIDs([]uint64{2, 3}, model.StatusBooked)

	require.Len(t, lost, 1)
	assert.Equal(t, uint64(2), lost[0].SeatID)
	assert.Equal(t, "A6", lost[0].SeatName)

	require.Len(t, e.Lines(), 1)
	assert.Equal(t, uint32(1), e.Lines()[0].Quantity)
	assert.Equal(t, uint64(52360), e.Lines()[0].TotalFinalCents)
	assert.True(t, e.Timer().Active, "countdown keeps running while seats remain")

	for _, id := range []uint64{2, 3} {
		seat, _ := store.Seat(id)
		assert.Equal(t, model.StatusBooked, seat.Status)
	}

	// The same batch again contributes nothing further.
	again := e.UpdateSeatsByIDs([]uint64{2, 3}, model.StatusBooked)
	assert.Empty(t, again)
	assert.Equal(t, 1, e.SelectedCount())
}

func TestUpdateSeatsByIDsEmptiesSelection(t *testing.T) {
	e, _, _ := newTestEngine(10)

	_, err := e.HandleSeatClick(1)
	require.NoError(t, err)

	lost := e.UpdateSeatsByIDs([]uint64{1}, model.StatusLocked)
	require.Len(t, lost, 1)
	assert.Empty(t, e.Lines())
	assert.False(t, e.Timer().Active)
}

func TestMarkSelectedSeatsAsBooked(t *testing.T) {
	e, store, _ := newTestEngine(10)

	_, err := e.HandleSeatClick(1)
	require.NoError(t, err)
	_, err = e.HandleSeatClick(2)
	require.NoError(t, err)

	ids := e.MarkSelectedSeatsAsBooked()
	assert.ElementsMatch(t, []uint64{1, 2}, ids)
	assert.Empty(t, e.Lines())
	assert.False(t, e.Timer().Active)

	for _, id := range ids {
		seat, _ := store.Seat(id)
		assert.Equal(t, model.StatusBooked, seat.Status)
	}
}

func TestClearRevertsEverything(t *testing.T) {
	e, store, _ := newTestEngine(10)

	_, err := e.HandleSeatClick(1)
	require.NoError(t, err)
	_, err = e.HandleSeatClick(3)
	require.NoError(t, err)

	e.Clear()

	assert.Empty(t, e.Lines())
	assert.Zero(t, e.SelectedCount())
	assert.False(t, e.Timer().Active)
	for _, id := range []uint64{1, 3} {
		seat, _ := store.Seat(id)
		assert.Equal(t, model.StatusAvailable, seat.Status)
	}
}
