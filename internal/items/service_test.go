package items

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit-backend/internal/bookings"
	"shareit-backend/internal/platform/apperr"
	"shareit-backend/internal/platform/clock"
	"shareit-backend/internal/platform/dbtest"
	"shareit-backend/internal/platform/optional"
)

var t0 = time.Date(2030, 3, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	conn     *sqlx.DB
	clk      *clock.Manual
	svc      *Service
	bookings *bookings.Service
	owner    int64
	booker   int64
}

func setup(t *testing.T) fixture {
	t.Helper()
	conn := dbtest.Open(t)
	clk := clock.NewManual(t0)
	return fixture{
		conn:     conn,
		clk:      clk,
		svc:      NewService(conn, clk),
		bookings: bookings.NewService(conn, clk),
		owner:    dbtest.Exec(t, conn, `INSERT INTO users (name, email) VALUES ('Owner', 'owner@example.com')`),
		booker:   dbtest.Exec(t, conn, `INSERT INTO users (name, email) VALUES ('Booker', 'booker@example.com')`),
	}
}

func yes() *bool { b := true; return &b }

func (f fixture) drill(t *testing.T) ItemResponse {
	t.Helper()
	it, err := f.svc.Create(context.Background(), f.owner, CreateItemRequest{Name: "Drill", Description: "Powerful drill", Available: yes()})
	require.NoError(t, err)
	return it
}

func TestService_CreateAndUpdate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	it := f.drill(t)
	assert.Equal(t, f.owner, it.OwnerID)
	assert.True(t, it.Available)
	assert.Nil(t, it.RequestID)

	_, err := f.svc.Create(ctx, 9999, CreateItemRequest{Name: "x", Description: "y", Available: yes()})
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))

	missing := int64(42)
	_, err = f.svc.Create(ctx, f.owner, CreateItemRequest{Name: "x", Description: "y", Available: yes(), RequestID: &missing})
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))

	_, err = f.svc.Create(ctx, f.owner, CreateItemRequest{Name: " ", Description: "y", Available: yes()})
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))

	// 未指定の項目は保持
	got, err := f.svc.Update(ctx, it.ID, f.owner, UpdateItemRequest{Available: optional.Of(false)})
	require.NoError(t, err)
	assert.Equal(t, "Drill", got.Name)
	assert.False(t, got.Available)

	got, err = f.svc.Update(ctx, it.ID, f.owner, UpdateItemRequest{Name: optional.Of("Hammer drill")})
	require.NoError(t, err)
	assert.Equal(t, "Hammer drill", got.Name)
	assert.Equal(t, "Powerful drill", got.Description)

	_, err = f.svc.Update(ctx, it.ID, f.owner, UpdateItemRequest{Name: optional.Field[string]{Set: true, Null: true}})
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))

	_, err = f.svc.Update(ctx, it.ID, f.owner, UpdateItemRequest{Description: optional.Of("   ")})
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))

	_, err = f.svc.Update(ctx, it.ID, f.booker, UpdateItemRequest{Name: optional.Of("mine")})
	assert.True(t, apperr.Is(err, apperr.CodeForbidden))

	_, err = f.svc.Update(ctx, 9999, f.owner, UpdateItemRequest{Name: optional.Of("x")})
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestService_CreateForRequest(t *testing.T) {
	f := setup(t)
	req := dbtest.Exec(t, f.conn, `INSERT INTO item_requests (description, requestor_id, created) VALUES ('need a drill', ?, ?)`, f.booker, t0)

	it, err := f.svc.Create(context.Background(), f.owner, CreateItemRequest{Name: "Drill", Description: "d", Available: yes(), RequestID: &req})
	require.NoError(t, err)
	require.NotNil(t, it.RequestID)
	assert.Equal(t, req, *it.RequestID)
}

// 予約 → 重複拒否 → 承認 → 期間中のコメント拒否 → 終了後にコメント
func TestService_BookApproveComment(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	it := f.drill(t)

	b, err := f.bookings.Create(ctx, f.booker, bookings.CreateBookingRequest{ItemID: it.ID, Start: t0.Add(time.Hour), End: t0.Add(2 * time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, bookings.StatusWaiting, b.Status)

	_, err = f.bookings.Create(ctx, f.booker, bookings.CreateBookingRequest{ItemID: it.ID, Start: t0.Add(90 * time.Minute), End: t0.Add(3 * time.Hour)})
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))

	_, err = f.bookings.Approve(ctx, b.ID, true, f.owner)
	require.NoError(t, err)

	_, err = f.svc.AddComment(ctx, it.ID, f.booker, CommentRequest{Text: "great"})
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument), "booking not finished yet")

	f.clk.Set(t0.Add(3 * time.Hour))
	c, err := f.svc.AddComment(ctx, it.ID, f.booker, CommentRequest{Text: "great"})
	require.NoError(t, err)
	assert.Equal(t, "Booker", c.AuthorName)
	assert.Equal(t, "great", c.Text)
	assert.True(t, c.Created.Equal(t0.Add(3*time.Hour)))

	_, err = f.svc.AddComment(ctx, it.ID, f.owner, CommentRequest{Text: "mine"})
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument), "owner never booked")

	_, err = f.svc.AddComment(ctx, 9999, f.booker, CommentRequest{Text: "x"})
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))

	_, err = f.svc.AddComment(ctx, it.ID, f.booker, CommentRequest{Text: strings.Repeat("a", 2001)})
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))

	view, err := f.svc.Get(ctx, it.ID, f.booker)
	require.NoError(t, err)
	require.Len(t, view.Comments, 1)
	assert.Equal(t, "Booker", view.Comments[0].AuthorName)
	assert.Nil(t, view.LastBooking, "only the owner sees bookings")

	view, err = f.svc.Get(ctx, it.ID, f.owner)
	require.NoError(t, err)
	require.NotNil(t, view.LastBooking)
	assert.Equal(t, b.ID, view.LastBooking.ID)
	assert.Equal(t, f.booker, view.LastBooking.BookerID)
	assert.Nil(t, view.NextBooking)
}

// 時計がナノ秒を返してもコメントの作成日時は保存値と一致する
type nanoClock struct{ t time.Time }

func (c nanoClock) Now() time.Time { return c.t }

func TestService_CommentCreatedMatchesStored(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	it := f.drill(t)
	dbtest.Exec(t, f.conn, `INSERT INTO bookings (item_id, booker_id, start_date, end_date, status) VALUES (?, ?, ?, ?, 'APPROVED')`,
		it.ID, f.booker, t0.Add(time.Hour), t0.Add(2*time.Hour))

	now := t0.Add(3*time.Hour + 123456789*time.Nanosecond)
	svc := NewService(f.conn, nanoClock{t: now})
	c, err := svc.AddComment(ctx, it.ID, f.booker, CommentRequest{Text: "great"})
	require.NoError(t, err)
	assert.Equal(t, 123456000, c.Created.Nanosecond())

	view, err := svc.Get(ctx, it.ID, f.booker)
	require.NoError(t, err)
	require.Len(t, view.Comments, 1)
	assert.True(t, view.Comments[0].Created.Equal(c.Created), "created %s, stored %s", c.Created, view.Comments[0].Created)
}

func TestService_RejectedBookingCannotComment(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	it := f.drill(t)

	b, err := f.bookings.Create(ctx, f.booker, bookings.CreateBookingRequest{ItemID: it.ID, Start: t0.Add(time.Hour), End: t0.Add(2 * time.Hour)})
	require.NoError(t, err)
	_, err = f.bookings.Approve(ctx, b.ID, false, f.owner)
	require.NoError(t, err)

	f.clk.Set(t0.Add(3 * time.Hour))
	_, err = f.svc.AddComment(ctx, it.ID, f.booker, CommentRequest{Text: "great"})
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))
}

func TestService_ListOwnedWithBookings(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	first := f.drill(t)
	second := f.drill(t)

	for _, start := range []time.Time{t0.Add(time.Hour), t0.Add(5 * time.Hour), t0.Add(9 * time.Hour)} {
		b, err := f.bookings.Create(ctx, f.booker, bookings.CreateBookingRequest{ItemID: first.ID, Start: start, End: start.Add(time.Hour)})
		require.NoError(t, err)
		_, err = f.bookings.Approve(ctx, b.ID, true, f.owner)
		require.NoError(t, err)
	}
	f.clk.Set(t0.Add(7 * time.Hour))

	list, err := f.svc.ListOwned(ctx, f.owner)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)

	require.NotNil(t, list[0].LastBooking)
	assert.True(t, list[0].LastBooking.Start.Equal(t0.Add(5*time.Hour)))
	require.NotNil(t, list[0].NextBooking)
	assert.True(t, list[0].NextBooking.Start.Equal(t0.Add(9*time.Hour)))
	assert.Nil(t, list[1].LastBooking)
	assert.Empty(t, list[1].Comments)

	other, err := f.svc.ListOwned(ctx, f.booker)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestService_Search(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.drill(t)
	_, err := f.svc.Create(ctx, f.owner, CreateItemRequest{Name: "Saw", Description: "100% sharp", Available: yes()})
	require.NoError(t, err)
	hidden, err := f.svc.Create(ctx, f.owner, CreateItemRequest{Name: "Old drill", Description: "broken", Available: yes()})
	require.NoError(t, err)
	_, err = f.svc.Update(ctx, hidden.ID, f.owner, UpdateItemRequest{Available: optional.Of(false)})
	require.NoError(t, err)

	res, err := f.svc.Search(ctx, f.booker, "DrIlL", 0, SearchDefaultSize)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Drill", res[0].Name)

	// 全角も半角として扱う
	res, err = f.svc.Search(ctx, f.booker, "ＤＲＩＬＬ", 0, SearchDefaultSize)
	require.NoError(t, err)
	assert.Len(t, res, 1)

	res, err = f.svc.Search(ctx, f.booker, "%", 0, SearchDefaultSize)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Saw", res[0].Name)

	res, err = f.svc.Search(ctx, f.booker, "   ", 0, SearchDefaultSize)
	require.NoError(t, err)
	assert.Empty(t, res)

	_, err = f.svc.Search(ctx, f.booker, "drill", 0, 0)
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))
}

// 保存側も検索語と同じ正規化を通るので、ASCII 以外でも大文字小文字・全角半角を問わず見つかる
func TestService_SearchNonASCII(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	drel, err := f.svc.Create(ctx, f.owner, CreateItemRequest{Name: "Дрель", Description: "ударная", Available: yes()})
	require.NoError(t, err)
	wide, err := f.svc.Create(ctx, f.owner, CreateItemRequest{Name: "ＤＲＩＬＬ", Description: "全角の説明", Available: yes()})
	require.NoError(t, err)

	cases := []struct {
		query string
		want  int64
	}{
		{"дрель", drel.ID},
		{"ДРЕЛЬ", drel.ID},
		{"Дрель", drel.ID},
		{"УДАР", drel.ID},
		{"drill", wide.ID},
		{"ＤＲＩＬＬ", wide.ID},
		{"ｄｒｉ", wide.ID},
		{"全角", wide.ID},
	}
	for _, tc := range cases {
		res, err := f.svc.Search(ctx, f.booker, tc.query, 0, SearchDefaultSize)
		require.NoError(t, err, tc.query)
		require.Len(t, res, 1, tc.query)
		assert.Equal(t, tc.want, res[0].ID, tc.query)
	}

	// 更新後は新しい名前で引ける
	_, err = f.svc.Update(ctx, drel.ID, f.owner, UpdateItemRequest{Name: optional.Of("Перфоратор"), Description: optional.Of("мощный")})
	require.NoError(t, err)
	res, err := f.svc.Search(ctx, f.booker, "дрель", 0, SearchDefaultSize)
	require.NoError(t, err)
	assert.Empty(t, res)
	res, err = f.svc.Search(ctx, f.booker, "ПЕРФО", 0, SearchDefaultSize)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, drel.ID, res[0].ID)
}

func TestNormalizeSearch(t *testing.T) {
	assert.Equal(t, "drill 2", NormalizeSearch("  ＤＲＩＬＬ　２ "))
	assert.Equal(t, "дрель", NormalizeSearch("ДРЕЛЬ"))
}
