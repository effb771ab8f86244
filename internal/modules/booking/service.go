package booking

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"gigboard/internal/clock"
	"gigboard/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

const confirmedIndexName = "idx_one_confirmed_per_artist_date"

// Viewer identifies one side of a negotiation, as resolved by the auth
// middleware. The engine treats it as a capability: it never looks up
// accounts itself.
type Viewer struct {
	Role    domain.Role
	PartyID int64
}

type Service struct {
	entries      EntryRepository
	clk          clock.Clock
	notifs       EventSender
	holdDuration time.Duration
}

const DefaultHoldDuration = 14 * 24 * time.Hour

func NewService(entries EntryRepository, clk clock.Clock, notifs EventSender, holdDuration time.Duration) *Service {
	if holdDuration <= 0 {
		holdDuration = DefaultHoldDuration
	}
	return &Service{
		entries:      entries,
		clk:          clk,
		notifs:       notifs,
		holdDuration: holdDuration,
	}
}

type CreateEntryInput struct {
	Date      string
	ArtistID  int64
	VenueID   int64
	Billing   string
	SetLength int
	Deal      *domain.Deal
	Details   json.RawMessage
	Notes     string
}

// EntryPatch carries the optional mutation payload. Nil pointers mean
// "leave unchanged"; Note is appended, never overwritten.
type EntryPatch struct {
	Deal      *domain.Deal
	Billing   *string
	SetLength *int
	Details   json.RawMessage
	Note      string

	// Hold parameters, read only by request_hold / approve_hold.
	HoldReason string
	HoldDays   int
}

// CreateEntry opens a negotiation for one artist/venue/date triple. The
// viewer's own side is taken from the capability, the other side from the
// input; every entry starts at INQUIRY.
func (s *Service) CreateEntry(ctx context.Context, viewer Viewer, in CreateEntryInput) (*domain.DateEntry, error) {
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return nil, ErrValidation
	}
	if in.Billing != "" && !domain.ValidBilling(domain.Billing(in.Billing)) {
		return nil, ErrValidation
	}
	if in.SetLength < 0 {
		return nil, ErrValidation
	}

	now := s.clk.Now()
	e := &domain.DateEntry{
		ID:        newEntryID(),
		Date:      in.Date,
		Status:    domain.StatusInquiry,
		Billing:   domain.Billing(in.Billing),
		SetLength: in.SetLength,
		Deal:      in.Deal,
		Details:   in.Details,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	switch viewer.Role {
	case domain.RoleArtist:
		e.Source = domain.SourceArtistRequest
		e.ArtistID = viewer.PartyID
		e.VenueID = in.VenueID
	case domain.RoleVenue:
		e.Source = domain.SourceVenueOffer
		e.VenueID = viewer.PartyID
		e.ArtistID = in.ArtistID
	default:
		return nil, ErrForbidden
	}
	if e.ArtistID == 0 || e.VenueID == 0 {
		return nil, ErrValidation
	}

	if err := s.entries.Create(ctx, e); err != nil {
		return nil, err
	}
	if s.notifs != nil {
		_ = s.notifs.NotifyEntryChanged(ctx, e, "")
	}
	return e, nil
}

// ListEntries returns every entry the viewer is a party to. Groups holding
// an expired hold are normalized first, so callers never see a stale HOLD.
func (s *Service) ListEntries(ctx context.Context, viewer Viewer) ([]domain.DateEntry, error) {
	list, err := s.listRaw(ctx, viewer)
	if err != nil {
		return nil, err
	}

	now := s.clk.Now()
	stale := map[entryGroup]struct{}{}
	for i := range list {
		if list[i].HoldExpired(now) {
			stale[groupKey(&list[i])] = struct{}{}
		}
	}
	if len(stale) == 0 {
		return list, nil
	}
	for i := range list {
		if _, ok := stale[groupKey(&list[i])]; ok {
			if err := s.normalizeGroup(ctx, list[i].ArtistID, list[i].Date); err != nil {
				return nil, err
			}
			delete(stale, groupKey(&list[i]))
		}
	}
	return s.listRaw(ctx, viewer)
}

// GetEntry returns one entry after the expiry pre-step, with the viewer's
// current action menu resolvable from its status.
func (s *Service) GetEntry(ctx context.Context, viewer Viewer, id string) (*domain.DateEntry, error) {
	e, err := s.getOwned(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	if e.HoldExpired(s.clk.Now()) {
		if err := s.normalizeGroup(ctx, e.ArtistID, e.Date); err != nil {
			return nil, err
		}
		return s.getOwned(ctx, viewer, id)
	}
	return e, nil
}

// ApplyAction runs one state-machine transition. The whole operation is
// atomic over the entry's (artist, date) sibling group: validation, status
// change, hold side effects, position compaction, and the commit-time
// re-check of the single-CONFIRMED invariant all happen inside one
// transaction against fresh reads.
func (s *Service) ApplyAction(ctx context.Context, viewer Viewer, id string, action Action, patch EntryPatch) (*domain.DateEntry, error) {
	if !ValidAction(action) {
		return nil, ErrValidation
	}
	if patch.Billing != nil && *patch.Billing != "" && !domain.ValidBilling(domain.Billing(*patch.Billing)) {
		return nil, ErrValidation
	}
	if patch.SetLength != nil && *patch.SetLength < 0 {
		return nil, ErrValidation
	}
	e, err := s.getOwned(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	// Lazy expiry pre-step. On expiry the entry lands on PENDING and the
	// requested action is then evaluated against that status, not failed.
	if e.HoldExpired(s.clk.Now()) {
		if err := s.normalizeGroup(ctx, e.ArtistID, e.Date); err != nil {
			return nil, err
		}
	}

	var updated *domain.DateEntry
	err = s.entries.WithGroupTx(ctx, e.ArtistID, e.Date, func(txCtx context.Context) error {
		fresh, err := s.entries.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		next, err := resolveAction(fresh.Status, viewer.Role, action)
		if err != nil {
			return err
		}

		now := s.clk.Now()
		hadPosition := fresh.HoldPosition > 0
		leavingHold := fresh.Status.OnHold() && !next.OnHold()

		switch action {
		case ActionRequestHold:
			fresh.HoldReason = patch.HoldReason
		case ActionApproveHold:
			sibs, err := s.entries.GetSiblings(txCtx, fresh.ArtistID, fresh.Date)
			if err != nil {
				return err
			}
			pos, err := nextHoldPosition(sibs, fresh.ID)
			if err != nil {
				return err
			}
			held := now
			until := now.Add(s.holdWindow(patch.HoldDays))
			fresh.HoldPosition = pos
			fresh.HeldAt = &held
			fresh.HeldUntil = &until
		}

		// A transition may carry updated terms; they land atomically with
		// the status change. Deal terms stay locked once confirmed.
		if patch.Deal != nil {
			if fresh.Status == domain.StatusConfirmed {
				return ErrConfirmedDealLocked
			}
			fresh.Deal = patch.Deal
		}
		if patch.Billing != nil {
			fresh.Billing = domain.Billing(*patch.Billing)
		}
		if patch.SetLength != nil {
			fresh.SetLength = *patch.SetLength
		}
		if len(patch.Details) > 0 {
			fresh.Details = patch.Details
		}

		if next == domain.StatusConfirmed {
			// Commit-time re-check: a sibling may have confirmed since the
			// menu was rendered.
			n, err := s.entries.CountConfirmed(txCtx, fresh.ArtistID, fresh.Date, fresh.ID)
			if err != nil {
				return err
			}
			if n > 0 {
				return ErrAlreadyBooked
			}
		}

		if leavingHold {
			fresh.ClearHold()
		}
		if patch.Note != "" {
			fresh.Notes = appendNote(fresh.Notes, patch.Note)
		}
		fresh.Status = next
		fresh.UpdatedAt = now
		if err := s.entries.Update(txCtx, fresh); err != nil {
			return err
		}

		if leavingHold && hadPosition {
			if err := s.compactSiblings(txCtx, fresh.ArtistID, fresh.Date, now); err != nil {
				return err
			}
		}
		updated = fresh
		return nil
	})
	if err != nil {
		return nil, mapConstraintError(err)
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyEntryChanged(ctx, updated, action)
	}
	return updated, nil
}

// ApplyStatus accepts an explicit target status instead of an action name
// and funnels it through the same transition table.
func (s *Service) ApplyStatus(ctx context.Context, viewer Viewer, id string, target domain.EntryStatus, patch EntryPatch) (*domain.DateEntry, error) {
	if !domain.ValidStatus(target) {
		return nil, ErrValidation
	}
	e, err := s.GetEntry(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	action, err := resolveActionTo(e.Status, viewer.Role, target)
	if err != nil {
		return nil, err
	}
	return s.ApplyAction(ctx, viewer, id, action, patch)
}

// UpdateEntry mutates negotiable terms without moving the status. Deal terms
// are immutable once the entry is CONFIRMED; a changed deal after that point
// is a superseding negotiation, not an edit.
func (s *Service) UpdateEntry(ctx context.Context, viewer Viewer, id string, patch EntryPatch) (*domain.DateEntry, error) {
	e, err := s.GetEntry(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	if patch.Billing != nil && *patch.Billing != "" && !domain.ValidBilling(domain.Billing(*patch.Billing)) {
		return nil, ErrValidation
	}

	var updated *domain.DateEntry
	err = s.entries.WithGroupTx(ctx, e.ArtistID, e.Date, func(txCtx context.Context) error {
		fresh, err := s.entries.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if patch.Deal != nil {
			if fresh.Status == domain.StatusConfirmed {
				return ErrConfirmedDealLocked
			}
			fresh.Deal = patch.Deal
		}
		if patch.Billing != nil {
			fresh.Billing = domain.Billing(*patch.Billing)
		}
		if patch.SetLength != nil {
			if *patch.SetLength < 0 {
				return ErrValidation
			}
			fresh.SetLength = *patch.SetLength
		}
		if len(patch.Details) > 0 {
			fresh.Details = patch.Details
		}
		if patch.Note != "" {
			fresh.Notes = appendNote(fresh.Notes, patch.Note)
		}
		fresh.UpdatedAt = s.clk.Now()
		if err := s.entries.Update(txCtx, fresh); err != nil {
			return err
		}
		updated = fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteEntry hard-deletes a pre-confirmation entry. Confirmed shows are
// cancelled, never deleted.
func (s *Service) DeleteEntry(ctx context.Context, viewer Viewer, id string) error {
	e, err := s.GetEntry(ctx, viewer, id)
	if err != nil {
		return err
	}
	if e.Status == domain.StatusConfirmed {
		return ErrInvalidTransition
	}

	return s.entries.WithGroupTx(ctx, e.ArtistID, e.Date, func(txCtx context.Context) error {
		fresh, err := s.entries.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if fresh.Status == domain.StatusConfirmed {
			return ErrInvalidTransition
		}
		hadPosition := fresh.HoldPosition > 0
		if err := s.entries.Delete(txCtx, id); err != nil {
			return err
		}
		if hadPosition {
			return s.compactSiblings(txCtx, fresh.ArtistID, fresh.Date, s.clk.Now())
		}
		return nil
	})
}

func (s *Service) listRaw(ctx context.Context, viewer Viewer) ([]domain.DateEntry, error) {
	switch viewer.Role {
	case domain.RoleArtist:
		return s.entries.ListForArtist(ctx, viewer.PartyID)
	case domain.RoleVenue:
		return s.entries.ListForVenue(ctx, viewer.PartyID)
	}
	return nil, ErrForbidden
}

func (s *Service) getOwned(ctx context.Context, viewer Viewer, id string) (*domain.DateEntry, error) {
	e, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch viewer.Role {
	case domain.RoleArtist:
		if e.ArtistID != viewer.PartyID {
			return nil, ErrForbidden
		}
	case domain.RoleVenue:
		if e.VenueID != viewer.PartyID {
			return nil, ErrForbidden
		}
	default:
		return nil, ErrForbidden
	}
	return e, nil
}

func (s *Service) holdWindow(days int) time.Duration {
	if days > 0 {
		return time.Duration(days) * 24 * time.Hour
	}
	return s.holdDuration
}

func (s *Service) normalizeGroup(ctx context.Context, artistID int64, date string) error {
	return s.entries.WithGroupTx(ctx, artistID, date, func(txCtx context.Context) error {
		sibs, err := s.entries.GetSiblings(txCtx, artistID, date)
		if err != nil {
			return err
		}
		changed, err := expireHolds(sibs, s.clk.Now())
		if err != nil {
			return err
		}
		for _, e := range changed {
			if err := s.entries.Update(txCtx, e); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Service) compactSiblings(ctx context.Context, artistID int64, date string, now time.Time) error {
	sibs, err := s.entries.GetSiblings(ctx, artistID, date)
	if err != nil {
		return err
	}
	changed, err := compactHolds(sibs)
	if err != nil {
		return err
	}
	for _, e := range changed {
		e.UpdatedAt = now
		if err := s.entries.Update(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

type entryGroup struct {
	artistID int64
	date     string
}

func groupKey(e *domain.DateEntry) entryGroup {
	return entryGroup{artistID: e.ArtistID, date: e.Date}
}

func appendNote(existing, note string) string {
	if existing == "" {
		return note
	}
	return existing + "\n" + note
}

func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == confirmedIndexName {
		return ErrAlreadyBooked
	}
	return err
}

// sortByPosition orders active holds ascending by position, stable on ID so
// compaction is deterministic.
func sortByPosition(holds []*domain.DateEntry) {
	sort.SliceStable(holds, func(i, j int) bool {
		if holds[i].HoldPosition != holds[j].HoldPosition {
			return holds[i].HoldPosition < holds[j].HoldPosition
		}
		return holds[i].ID < holds[j].ID
	})
}
