package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hessamz/seatmap-session/internal/model"
)

func testLayout() *model.Layout {
	gold := &model.Ticket{ID: 1, Name: "Gold", PriceCents: 50000}
	return &model.Layout{
		Stage: model.Stage{Name: "Main", Shape: "rect", X: 0, Y: 0, Width: 400, Height: 60},
		Sections: []*model.Section{
			{
				ID: 10, Name: "Orchestra", X: 0, Y: 100, Width: 400, Height: 200,
				Rows: []*model.Row{
					{
						ID: 100, Title: "A",
						Seats: []*model.Seat{
							{ID: 1001, Number: "A1", X: 20, Y: 120, Radius: 10, Status: model.StatusAvailable, Ticket: gold},
							{ID: 1002, Number: "A2", X: 50, Y: 120, Radius: 10, Status: model.StatusAvailable, Ticket: gold},
						},
					},
					{
						ID: 101, Title: "B",
						Seats: []*model.Seat{
							{ID: 1003, Number: "B1", X: 20, Y: 150, Radius: 10, Status: model.StatusAvailable, Ticket: gold},
						},
					},
				},
			},
			{
				ID: 11, Name: "Balcony", X: 0, Y: 400, Width: 400, Height: 100,
				Rows: []*model.Row{
					{
						ID: 110, Title: "A",
						Seats: []*model.Seat{
							{ID: 1101, Number: "A1", X: 20, Y: 420, Radius: 10, Status: model.StatusAvailable, Ticket: gold},
						},
					},
				},
			},
		},
	}
}

func TestStoreLookup(t *testing.T) {
	s := New(testLayout(), "viewer-1")

	seat, ok := s.Seat(1003)
	require.True(t, ok)
	assert.Equal(t, "B1", seat.Number)

	sectionID, rowID, ok := s.Locate(1003)
	require.True(t, ok)
	assert.Equal(t, uint64(10), sectionID)
	assert.Equal(t, uint64(101), rowID)

	_, ok = s.Seat(9999)
	assert.False(t, ok)
}

func TestStoreStructuralSharing(t *testing.T) {
	s := New(testLayout(), "viewer-1")

	beforeSections := s.Sections()
	beforeRowA := beforeSections[0].Rows[0]
	beforeSibling, _ := s.Seat(1002)
	beforeOtherSection := beforeSections[1]

	updated, ok := s.SetStatus(1001, model.StatusSelected)
	require.True(t, ok)
	assert.Equal(t, model.StatusSelected, updated.Status)

	afterSections := s.Sections()
	// The path to the changed seat is new...
	assert.NotSame(t, beforeSections[0], afterSections[0])
	assert.NotSame(t, beforeRowA, afterSections[0].Rows[0])
	// ...while siblings and untouched sections keep their identity.
	afterSibling, _ := s.Seat(1002)
	assert.Same(t, beforeSibling, afterSibling)
	assert.Same(t, beforeOtherSection, afterSections[1])
	assert.Same(t, beforeRowA.Seats[1], afterSections[0].Rows[0].Seats[1])
}

func TestStoreSelfHoldNormalization(t *testing.T) {
	l := testLayout()
	l.Sections[0].Rows[0].Seats[0].Status = model.StatusHold
	l.Sections[0].Rows[0].Seats[0].HoldBy = "viewer-1"
	l.Sections[0].Rows[0].Seats[1].Status = model.StatusHold
	l.Sections[0].Rows[0].Seats[1].HoldBy = "someone-else"

	s := New(l, "viewer-1")

	own, _ := s.Seat(1001)
	assert.Equal(t, model.StatusAvailable, own.Status)
	assert.Empty(t, own.HoldBy)

	other, _ := s.Seat(1002)
	assert.Equal(t, model.StatusHold, other.Status)
	assert.Equal(t, "someone-else", other.HoldBy)
}

func TestStoreGeometryCoercion(t *testing.T) {
	l := testLayout()
	l.Stage.Width = math.NaN()
	l.Sections[0].X = math.Inf(1)
	l.Sections[0].Rows[0].Seats[0].X = math.NaN()
	l.Sections[0].Rows[0].Seats[0].Radius = math.Inf(-1)

	s := New(l, "")

	assert.Zero(t, s.Stage().Width)
	assert.Zero(t, s.Sections()[0].X)
	seat, _ := s.Seat(1001)
	assert.Zero(t, seat.X)
	assert.Equal(t, float64(DefaultSeatRadius), seat.Radius)
}

func TestStoreCompactsNilEntries(t *testing.T) {
	l := testLayout()
	l.Sections = append([]*model.Section{nil}, l.Sections...)
	l.Sections[1].Rows = append([]*model.Row{nil}, l.Sections[1].Rows...)
	l.Sections[1].Rows[1].Seats = append([]*model.Seat{nil}, l.Sections[1].Rows[1].Seats...)

	s := New(l, "viewer-1")

	require.Len(t, s.Sections(), 2)
	require.Len(t, s.Sections()[0].Rows, 2)

	// Every seat still resolves through the flat index despite the
	// holes in the source slices.
	for id, number := range map[uint64]string{1001: "A1", 1002: "A2", 1003: "B1", 1101: "A1"} {
		seat, ok := s.Seat(id)
		require.True(t, ok, "seat %d", id)
		assert.Equal(t, number, seat.Number)
	}

	sectionID, rowID, ok := s.Locate(1101)
	require.True(t, ok)
	assert.Equal(t, uint64(11), sectionID)
	assert.Equal(t, uint64(110), rowID)

	updated, ok := s.SetStatus(1003, model.StatusSelected)
	require.True(t, ok)
	assert.Equal(t, "B1", updated.Number)
	assert.Equal(t, model.StatusSelected, updated.Status)
}

func TestStoreBulkUpdate(t *testing.T) {
	s := New(testLayout(), "")

	applied := s.SetStatusBulk([]uint64{1001, 1003, 9999}, model.StatusBooked)
	assert.Equal(t, []uint64{1001, 1003}, applied)

	for _, id := range []uint64{1001, 1003} {
		seat, _ := s.Seat(id)
		assert.Equal(t, model.StatusBooked, seat.Status)
	}
	untouched, _ := s.Seat(1002)
	assert.Equal(t, model.StatusAvailable, untouched.Status)

	// A second application changes nothing.
	s.SetStatusBulk([]uint64{1001, 1003}, model.StatusBooked)
	seat, _ := s.Seat(1001)
	assert.Equal(t, model.StatusBooked, seat.Status)
}
