package handler

import (
    "context"
    "encoding/json"
    "errors"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/horizonvoyages/travel-backend/internal/cart"
    "github.com/horizonvoyages/travel-backend/internal/model"
    "github.com/horizonvoyages/travel-backend/internal/wizard"
)

// captureCreator stands in for the trip-request repository on submission.
type captureCreator struct {
    id    uint64
    err   error
    calls int
}

func (f *captureCreator) Create(_ context.Context, _ *model.TripRequest) (uint64, error) {
    f.calls++
    if f.err != nil {
        return 0, f.err
    }
    return f.id, nil
}

type captureAssociator struct {
    pairs [][2]uint64
}

func (f *captureAssociator) AssociateActivity(_ context.Context, tripRequestID, activityID uint64) error {
    f.pairs = append(f.pairs, [2]uint64{tripRequestID, activityID})
    return nil
}

// doJSON runs a handler func against a synthetic request and returns the
// recorded response.
func doJSON(t *testing.T, h echo.HandlerFunc, method, body, sessionID string) *httptest.ResponseRecorder {
    t.Helper()
    req := httptest.NewRequest(method, "/", strings.NewReader(body))
    if body != "" {
        req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    }
    if sessionID != "" {
        req.Header.Set(HeaderSessionID, sessionID)
    }
    rec := httptest.NewRecorder()
    require.NoError(t, h(echo.New().NewContext(req, rec)))
    return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
    t.Helper()
    var m map[string]any
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
    return m
}

func strp(s string) *string { return &s }
func intp(n int) *int       { return &n }

// completeSession opens a session and fills every answer with values that
// validate against the real clock.
func completeSession(m *wizard.SessionManager) *wizard.Session {
    sess := m.Create("", wizard.DefaultOptions([]string{"Dubai, UAE"}))
    start := time.Now().UTC().AddDate(0, 1, 0)
    end := start.AddDate(0, 0, 9)
    sess.ApplyPatch(wizard.AnswerPatch{
        Origin:           strp("Mumbai, India"),
        Destination:      strp("Dubai, UAE"),
        StartDate:        strp(start.Format("2006-01-02")),
        EndDate:          strp(end.Format("2006-01-02")),
        Adults:           intp(2),
        Children:         intp(0),
        FirstName:        strp("Asha"),
        LastName:         strp("Rao"),
        PhoneCountryCode: strp("+91"),
        PhoneNumber:      strp("9876543210"),
        Email:            strp("asha@example.com"),
        Nationality:      strp("Indian"),
        Airline:          strp("Any"),
        Hotel:            strp("4 Star"),
        FlightClass:      strp("Economy"),
        VisaStatus:       strp("N/A"),
    })
    return sess
}

func newWizardTestHandler(creator *captureCreator, assoc *captureAssociator) (*WizardHandler, *wizard.SessionManager, *cart.Manager) {
    sessions := wizard.NewSessionManager()
    carts := cart.NewManager(nil)
    return &WizardHandler{
        Sessions:  sessions,
        Carts:     carts,
        Submitter: wizard.NewSubmitter(creator, assoc, nil),
    }, sessions, carts
}

func TestWizardSessionHeaderHandling(t *testing.T) {
    h, _, _ := newWizardTestHandler(&captureCreator{}, &captureAssociator{})

    rec := doJSON(t, h.ViewSession, http.MethodGet, "", "")
    assert.Equal(t, http.StatusBadRequest, rec.Code)

    rec = doJSON(t, h.ViewSession, http.MethodGet, "", "no-such-session")
    assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPatchAnswersRejectsNegativeCounts(t *testing.T) {
    h, sessions, _ := newWizardTestHandler(&captureCreator{}, &captureAssociator{})
    sess := sessions.Create("", wizard.DefaultOptions(nil))

    rec := doJSON(t, h.PatchAnswers, http.MethodPatch, `{"adults":-1}`, sess.ID())
    assert.Equal(t, http.StatusBadRequest, rec.Code)

    rec = doJSON(t, h.PatchAnswers, http.MethodPatch, `{"adults":2,"children":1}`, sess.ID())
    assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdvanceReportsMovedFlag(t *testing.T) {
    h, sessions, _ := newWizardTestHandler(&captureCreator{}, &captureAssociator{})
    sess := sessions.Create("", wizard.DefaultOptions(nil))

    // Unanswered origin: the move is refused, not an error.
    rec := doJSON(t, h.Advance, http.MethodPost, "", sess.ID())
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, false, decodeBody(t, rec)["moved"])

    sess.ApplyPatch(wizard.AnswerPatch{Origin: strp("Mumbai, India")})
    rec = doJSON(t, h.Advance, http.MethodPost, "", sess.ID())
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, true, decodeBody(t, rec)["moved"])
}

func TestSubmitIncompleteWizardConflicts(t *testing.T) {
    creator := &captureCreator{id: 1}
    h, sessions, _ := newWizardTestHandler(creator, &captureAssociator{})
    sess := sessions.Create("", wizard.DefaultOptions(nil))

    rec := doJSON(t, h.Submit, http.MethodPost, "", sess.ID())
    assert.Equal(t, http.StatusConflict, rec.Code)
    assert.Zero(t, creator.calls)
}

func TestSubmitOverHTTP(t *testing.T) {
    creator := &captureCreator{id: 42}
    assoc := &captureAssociator{}
    h, sessions, carts := newWizardTestHandler(creator, assoc)
    sess := completeSession(sessions)

    ctx := context.Background()
    carts.Get(ctx, sess.ID()).Add(ctx, cart.Entry{ActivityID: 501, Name: "Desert Safari"})

    rec := doJSON(t, h.Submit, http.MethodPost, "", sess.ID())
    require.Equal(t, http.StatusCreated, rec.Code)
    body := decodeBody(t, rec)
    assert.Equal(t, "saved", body["status"])
    assert.EqualValues(t, 42, body["trip_request_id"])
    assert.Equal(t, [][2]uint64{{42, 501}}, assoc.pairs)
    assert.Zero(t, carts.Get(ctx, sess.ID()).Len())

    // Re-submitting reports the stored id without a second creation.
    rec = doJSON(t, h.Submit, http.MethodPost, "", sess.ID())
    require.Equal(t, http.StatusCreated, rec.Code)
    assert.EqualValues(t, 42, decodeBody(t, rec)["trip_request_id"])
    assert.Equal(t, 1, creator.calls)

    rec = doJSON(t, h.SubmitStatus, http.MethodGet, "", sess.ID())
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "saved", decodeBody(t, rec)["status"])
}

func TestSubmitFailureReturns500AndKeepsCart(t *testing.T) {
    creator := &captureCreator{err: errors.New("insert failed")}
    h, sessions, carts := newWizardTestHandler(creator, &captureAssociator{})
    sess := completeSession(sessions)

    ctx := context.Background()
    carts.Get(ctx, sess.ID()).Add(ctx, cart.Entry{ActivityID: 501})

    rec := doJSON(t, h.Submit, http.MethodPost, "", sess.ID())
    assert.Equal(t, http.StatusInternalServerError, rec.Code)
    assert.Equal(t, "error", decodeBody(t, rec)["status"])
    assert.Equal(t, 1, carts.Get(ctx, sess.ID()).Len())
}

func TestCartNavigateClearsOutsideBrowsing(t *testing.T) {
    carts := cart.NewManager(nil)
    h := &CartHandler{Carts: carts}

    ctx := context.Background()
    carts.Get(ctx, "s1").Add(ctx, cart.Entry{ActivityID: 9})

    rec := doJSON(t, h.Navigate, http.MethodPost, `{"path":"/destinations/3"}`, "s1")
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, 1, carts.Get(ctx, "s1").Len())

    rec = doJSON(t, h.Navigate, http.MethodPost, `{"path":"/about"}`, "s1")
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Zero(t, carts.Get(ctx, "s1").Len())

    rec = doJSON(t, h.GetCart, http.MethodGet, "", "")
    assert.Equal(t, http.StatusBadRequest, rec.Code)
}
