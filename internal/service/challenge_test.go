package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gearclash/gearclash/internal/engine"
	"github.com/gearclash/gearclash/internal/game"
)

// mockChallengeRepo is an in-memory repository with the same
// compare-and-swap semantics as the SQLite implementation, so the
// concurrency tests exercise real contention.
type mockChallengeRepo struct {
	mu sync.Mutex

	challenges map[uint]*game.Challenge
	created    []createdStamp
	cards      map[uint]game.Card
	hands      map[uint]*game.DealtHand
	tuned      map[uint]map[uint]*game.TunedCar

	credits   []game.XPCredit
	transfers []game.CardTransfer
	nextID    uint
}

type createdStamp struct {
	userID uint
	at     time.Time
}

func newMockChallengeRepo() *mockChallengeRepo {
	return &mockChallengeRepo{
		challenges: map[uint]*game.Challenge{},
		cards:      map[uint]game.Card{},
		hands:      map[uint]*game.DealtHand{},
		tuned:      map[uint]map[uint]*game.TunedCar{},
	}
}

func (m *mockChallengeRepo) GetChallengeByID(id uint) (*game.Challenge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch, ok := m.challenges[id]
	if !ok {
		return nil, game.ErrNotFound
	}
	cp := *ch
	return &cp, nil
}

func (m *mockChallengeRepo) CreateChallenge(ch *game.Challenge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	ch.ID = m.nextID
	cp := *ch
	m.challenges[ch.ID] = &cp
	m.created = append(m.created, createdStamp{userID: ch.ChallengerID, at: time.Now()})
	return nil
}

func (m *mockChallengeRepo) CountChallengesCreatedSince(userID uint, since time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, c := range m.created {
		if c.userID == userID && !c.at.Before(since) {
			n++
		}
	}
	return n, nil
}

func (m *mockChallengeRepo) GetCardsByIDs(ids []uint) ([]game.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]game.Card, 0, len(ids))
	for _, id := range ids {
		if c, ok := m.cards[id]; ok {
			res = append(res, c)
		}
	}
	return res, nil
}

func (m *mockChallengeRepo) GetOpenHand(userID uint) (*game.DealtHand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.hands[userID]
	if !ok || h.Consumed {
		return nil, nil
	}
	cp := *h
	return &cp, nil
}

func (m *mockChallengeRepo) ConsumeHand(handID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, h := range m.hands {
		if h.ID == handID {
			h.Consumed = true
			return nil
		}
	}
	return game.ErrNotFound
}

func (m *mockChallengeRepo) GetTunedCarForCard(userID, cardID uint) (*game.TunedCar, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if byCard, ok := m.tuned[userID]; ok {
		if tc, ok := byCard[cardID]; ok {
			cp := *tc
			return &cp, nil
		}
	}
	return nil, game.ErrNotFound
}

func (m *mockChallengeRepo) CompleteChallenge(ch *game.Challenge, credits []game.XPCredit, transfers []game.CardTransfer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.challenges[ch.ID]
	if !ok {
		return game.ErrNotFound
	}
	if stored.Status != game.StatusPending {
		return game.ErrAlreadyResolved
	}
	for _, tr := range transfers {
		card, ok := m.cards[tr.CardID]
		if !ok || card.OwnerID != tr.FromUserID {
			return game.ErrCardNoLongerOwned
		}
	}
	cp := *ch
	cp.Status = game.StatusCompleted
	m.challenges[ch.ID] = &cp
	m.credits = append(m.credits, credits...)
	for _, tr := range transfers {
		card := m.cards[tr.CardID]
		card.OwnerID = tr.ToUserID
		m.cards[tr.CardID] = card
	}
	m.transfers = append(m.transfers, transfers...)
	return nil
}

func (m *mockChallengeRepo) MarkChallengeStatus(id uint, from, to game.ChallengeStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch, ok := m.challenges[id]
	if !ok {
		return game.ErrNotFound
	}
	if ch.Status != from {
		return game.ErrAlreadyResolved
	}
	ch.Status = to
	return nil
}

func (m *mockChallengeRepo) addCard(id, ownerID uint, power, torque, speed int) {
	c := game.Card{Kind: game.KindVehicle, OwnerID: ownerID, Power: power, Torque: torque, TopSpeed: speed}
	c.ID = id
	m.cards[id] = c
}

func (m *mockChallengeRepo) addHand(handID, userID uint, cardIDs [3]uint) {
	h := &game.DealtHand{UserID: userID, HandKey: "hand-key", Card1ID: cardIDs[0], Card2ID: cardIDs[1], Card3ID: cardIDs[2]}
	h.ID = handID
	m.hands[userID] = h
}

func testSettings() Settings {
	return Settings{
		Catalog: tuningCatalog(),
		Categories: []game.Category{
			{Name: "street", PowerWeight: 0.5, TorqueWeight: 0.3, SpeedWeight: 0.2},
		},
		WinXP:              30,
		LoseXP:             20,
		DrawXP:             10,
		WeeklyChallengeCap: 3,
		RateWindow:         7 * 24 * time.Hour,
		ChallengeTTL:       48 * time.Hour,
	}
}

func slotAssignment(power, torque, speed uint) engine.SlotAssignment {
	return engine.SlotAssignment{
		game.SlotPower:  power,
		game.SlotTorque: torque,
		game.SlotSpeed:  speed,
	}
}

func TestCreateChallenge_SlotMode(t *testing.T) {
	mr := newMockChallengeRepo()
	mr.addCard(1, 7, 300, 400, 250)
	mr.addCard(2, 7, 280, 420, 260)
	mr.addCard(3, 7, 310, 390, 255)
	mr.addHand(1, 7, [3]uint{1, 2, 3})

	opponent := uint(8)
	ch, err := CreateChallenge(mr, testSettings(), CreateChallengeRequest{
		ChallengerID: 7,
		OpponentID:   &opponent,
		Mode:         game.ModeSlots,
		Assignment:   slotAssignment(1, 2, 3),
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ch.Status != game.StatusPending {
		t.Fatalf("expected pending, got %s", ch.Status)
	}
	if ch.RewardKind != game.RewardXP {
		t.Fatalf("expected default reward kind xp, got %s", ch.RewardKind)
	}
	if ch.ChallengerPowerCardID != 1 || ch.ChallengerTorqueCardID != 2 || ch.ChallengerSpeedCardID != 3 {
		t.Fatalf("assignment not recorded: %+v", ch)
	}
	// The hand is spent on creation.
	if h, _ := mr.GetOpenHand(7); h != nil {
		t.Fatalf("expected the challenger's hand to be consumed")
	}
}

func TestCreateChallenge_Rejections(t *testing.T) {
	mr := newMockChallengeRepo()
	settings := testSettings()
	self := uint(7)

	if _, err := CreateChallenge(mr, settings, CreateChallengeRequest{
		ChallengerID: 7, OpponentID: &self, Mode: game.ModeSlots,
	}, nil); !errors.Is(err, ErrSelfChallenge) {
		t.Fatalf("expected ErrSelfChallenge, got %v", err)
	}

	if _, err := CreateChallenge(mr, settings, CreateChallengeRequest{
		ChallengerID: 7, Mode: game.ModeSlots, RewardKind: "trophies",
	}, nil); !errors.Is(err, ErrInvalidRewardKind) {
		t.Fatalf("expected ErrInvalidRewardKind, got %v", err)
	}

	if _, err := CreateChallenge(mr, settings, CreateChallengeRequest{
		ChallengerID: 7, Mode: game.ModeSlots,
	}, nil); !errors.Is(err, ErrNoOpenHand) {
		t.Fatalf("expected ErrNoOpenHand, got %v", err)
	}

	if _, err := CreateChallenge(mr, settings, CreateChallengeRequest{
		ChallengerID: 7, Mode: game.ModeCategory, Category: "no-such",
	}, nil); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}

	if _, err := CreateChallenge(mr, settings, CreateChallengeRequest{
		ChallengerID: 7, Mode: "tournament",
	}, nil); !errors.Is(err, ErrInvalidMode) {
		t.Fatalf("expected ErrInvalidMode, got %v", err)
	}
}

func TestCreateChallenge_SlidingWindowRateLimit(t *testing.T) {
	mr := newMockChallengeRepo()
	mr.addCard(1, 7, 300, 400, 250)
	settings := testSettings()
	now := time.Now()

	// Three prior creations: 8 days, 6 days and 1 day ago. Only the last
	// two fall inside the 7-day window, so a new creation still fits.
	for _, age := range []time.Duration{8 * 24 * time.Hour, 6 * 24 * time.Hour, 24 * time.Hour} {
		mr.created = append(mr.created, createdStamp{userID: 7, at: now.Add(-age)})
	}

	ch, err := CreateChallenge(mr, settings, CreateChallengeRequest{
		ChallengerID: 7, Mode: game.ModeCategory, Category: "street", CardID: 1,
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ch.Category != "street" || ch.ChallengerCardID != 1 {
		t.Fatalf("category challenge not recorded: %+v", ch)
	}

	// Now three creations sit inside the window; the next one is rejected.
	if _, err := CreateChallenge(mr, settings, CreateChallengeRequest{
		ChallengerID: 7, Mode: game.ModeCategory, Category: "street", CardID: 1,
	}, nil); !errors.Is(err, game.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}

	// Other players are unaffected.
	mr.addCard(2, 8, 300, 400, 250)
	if _, err := CreateChallenge(mr, settings, CreateChallengeRequest{
		ChallengerID: 8, Mode: game.ModeCategory, Category: "street", CardID: 2,
	}, nil); err != nil {
		t.Fatalf("unexpected error for other player: %v", err)
	}
}

// setupSlotChallenge posts a pending slot-mode challenge from player 7 to
// player 8 with the stat lines of the worked resolution example.
func setupSlotChallenge(t *testing.T, mr *mockChallengeRepo, opponentID *uint, rewardKind game.RewardKind) *game.Challenge {
	t.Helper()
	mr.addCard(1, 7, 300, 400, 250)
	mr.addCard(2, 7, 280, 400, 260)
	mr.addCard(3, 7, 310, 390, 255)
	mr.addHand(1, 7, [3]uint{1, 2, 3})
	mr.addCard(11, 8, 290, 380, 240)
	mr.addCard(12, 8, 270, 410, 250)
	mr.addCard(13, 8, 260, 370, 270)
	mr.addHand(2, 8, [3]uint{11, 12, 13})

	ch, err := CreateChallenge(mr, testSettings(), CreateChallengeRequest{
		ChallengerID: 7,
		OpponentID:   opponentID,
		Mode:         game.ModeSlots,
		RewardKind:   rewardKind,
		Assignment:   slotAssignment(1, 2, 3),
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return ch
}

func TestAcceptChallenge_SlotMode(t *testing.T) {
	mr := newMockChallengeRepo()
	opponent := uint(8)
	ch := setupSlotChallenge(t, mr, &opponent, game.RewardXP)

	// Power 300 vs 290 (challenger), torque 400 vs 410 (acceptor), speed
	// 255 vs 270 (acceptor): the acceptor takes the match 2-1.
	res, err := AcceptChallenge(mr, testSettings(), ch.ID, AcceptChallengeRequest{
		AcceptorID: 8,
		Assignment: slotAssignment(11, 12, 13),
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != game.StatusCompleted {
		t.Fatalf("expected completed, got %s", res.Status)
	}
	if res.WinnerID == nil || *res.WinnerID != 8 {
		t.Fatalf("expected winner 8, got %v", res.WinnerID)
	}
	if res.ChallengerScore != 1 || res.OpponentScore != 2 {
		t.Fatalf("expected 1-2 rounds, got %v-%v", res.ChallengerScore, res.OpponentScore)
	}
	if len(res.Rounds) != 3 {
		t.Fatalf("expected 3 rounds, got %d", len(res.Rounds))
	}
	if res.Rounds[0].Winner != game.SideChallenger || res.Rounds[1].Winner != game.SideOpponent || res.Rounds[2].Winner != game.SideOpponent {
		t.Fatalf("unexpected round winners: %+v", res.Rounds)
	}

	// XP mode pays the winner 30 and the loser 20.
	want := map[uint]int{8: 30, 7: 20}
	if len(mr.credits) != 2 {
		t.Fatalf("expected 2 credits, got %+v", mr.credits)
	}
	for _, cr := range mr.credits {
		if want[cr.UserID] != cr.Amount {
			t.Fatalf("unexpected credit %+v", cr)
		}
	}
	if len(mr.transfers) != 0 {
		t.Fatalf("expected no card transfers in xp mode, got %+v", mr.transfers)
	}

	// The acceptor's hand is spent too.
	if h, _ := mr.GetOpenHand(8); h != nil {
		t.Fatalf("expected the acceptor's hand to be consumed")
	}
}

func TestAcceptChallenge_CardWagerTransfersLoserCards(t *testing.T) {
	mr := newMockChallengeRepo()
	opponent := uint(8)
	ch := setupSlotChallenge(t, mr, &opponent, game.RewardCardWager)

	res, err := AcceptChallenge(mr, testSettings(), ch.ID, AcceptChallengeRequest{
		AcceptorID: 8,
		Assignment: slotAssignment(11, 12, 13),
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.WinnerID == nil || *res.WinnerID != 8 {
		t.Fatalf("expected winner 8, got %v", res.WinnerID)
	}

	// The loser's three staked cards all move to the winner; the only
	// credit is the winner's XP.
	if len(mr.transfers) != 3 {
		t.Fatalf("expected 3 transfers, got %+v", mr.transfers)
	}
	for _, cardID := range []uint{1, 2, 3} {
		if mr.cards[cardID].OwnerID != 8 {
			t.Fatalf("card %d not transferred to winner", cardID)
		}
	}
	if len(mr.credits) != 1 || mr.credits[0].UserID != 8 || mr.credits[0].Amount != 30 {
		t.Fatalf("expected only the winner's credit, got %+v", mr.credits)
	}
}

func TestAcceptChallenge_CategoryMode(t *testing.T) {
	mr := newMockChallengeRepo()
	mr.addCard(1, 7, 300, 400, 250)
	mr.addCard(11, 8, 290, 410, 270)

	opponent := uint(8)
	ch, err := CreateChallenge(mr, testSettings(), CreateChallengeRequest{
		ChallengerID: 7, OpponentID: &opponent,
		Mode: game.ModeCategory, Category: "street", CardID: 1,
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, err := AcceptChallenge(mr, testSettings(), ch.ID, AcceptChallengeRequest{
		AcceptorID: 8,
		CardID:     11,
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// street weights 0.5/0.3/0.2: challenger 320, acceptor 322.
	if res.ChallengerScore != 320 || res.OpponentScore != 322 {
		t.Fatalf("unexpected scores %v-%v", res.ChallengerScore, res.OpponentScore)
	}
	if res.WinnerID == nil || *res.WinnerID != 8 {
		t.Fatalf("expected winner 8, got %v", res.WinnerID)
	}
}

func TestAcceptChallenge_OpenChallenge(t *testing.T) {
	mr := newMockChallengeRepo()
	ch := setupSlotChallenge(t, mr, nil, game.RewardXP)

	res, err := AcceptChallenge(mr, testSettings(), ch.ID, AcceptChallengeRequest{
		AcceptorID: 8,
		Assignment: slotAssignment(11, 12, 13),
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.OpponentID == nil || *res.OpponentID != 8 {
		t.Fatalf("expected the acceptor recorded as opponent, got %v", res.OpponentID)
	}
}

func TestAcceptChallenge_Rejections(t *testing.T) {
	mr := newMockChallengeRepo()
	opponent := uint(8)
	ch := setupSlotChallenge(t, mr, &opponent, game.RewardXP)

	if _, err := AcceptChallenge(mr, testSettings(), ch.ID, AcceptChallengeRequest{
		AcceptorID: 7,
	}, nil); !errors.Is(err, ErrOwnChallenge) {
		t.Fatalf("expected ErrOwnChallenge, got %v", err)
	}
	if _, err := AcceptChallenge(mr, testSettings(), ch.ID, AcceptChallengeRequest{
		AcceptorID: 9,
	}, nil); !errors.Is(err, ErrNotChallenged) {
		t.Fatalf("expected ErrNotChallenged, got %v", err)
	}
	if _, err := AcceptChallenge(mr, testSettings(), 999, AcceptChallengeRequest{
		AcceptorID: 8,
	}, nil); !errors.Is(err, game.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAcceptChallenge_Expired(t *testing.T) {
	mr := newMockChallengeRepo()
	opponent := uint(8)
	ch := setupSlotChallenge(t, mr, &opponent, game.RewardXP)

	// Push the deadline into the past; the stored row still says pending.
	mr.mu.Lock()
	mr.challenges[ch.ID].ExpiresAt = time.Now().Add(-time.Minute)
	mr.mu.Unlock()

	if _, err := AcceptChallenge(mr, testSettings(), ch.ID, AcceptChallengeRequest{
		AcceptorID: 8,
		Assignment: slotAssignment(11, 12, 13),
	}, nil); !errors.Is(err, game.ErrChallengeExpired) {
		t.Fatalf("expected ErrChallengeExpired, got %v", err)
	}

	// Lazy expiry persisted the terminal state.
	stored, _ := mr.GetChallengeByID(ch.ID)
	if stored.Status != game.StatusExpired {
		t.Fatalf("expected stored status expired, got %s", stored.Status)
	}
}

func TestAcceptChallenge_CardNoLongerOwned(t *testing.T) {
	mr := newMockChallengeRepo()
	opponent := uint(8)
	ch := setupSlotChallenge(t, mr, &opponent, game.RewardXP)

	// The challenger traded away a staked card after posting.
	mr.mu.Lock()
	card := mr.cards[2]
	card.OwnerID = 99
	mr.cards[2] = card
	mr.mu.Unlock()

	if _, err := AcceptChallenge(mr, testSettings(), ch.ID, AcceptChallengeRequest{
		AcceptorID: 8,
		Assignment: slotAssignment(11, 12, 13),
	}, nil); !errors.Is(err, game.ErrCardNoLongerOwned) {
		t.Fatalf("expected ErrCardNoLongerOwned, got %v", err)
	}
}

func TestAcceptChallenge_ConcurrentDoubleAccept(t *testing.T) {
	mr := newMockChallengeRepo()
	ch := setupSlotChallenge(t, mr, nil, game.RewardXP)
	mr.addCard(21, 9, 280, 390, 245)
	mr.addCard(22, 9, 260, 400, 250)
	mr.addCard(23, 9, 250, 360, 265)
	mr.addHand(3, 9, [3]uint{21, 22, 23})

	requests := []AcceptChallengeRequest{
		{AcceptorID: 8, Assignment: slotAssignment(11, 12, 13)},
		{AcceptorID: 9, Assignment: slotAssignment(21, 22, 23)},
	}

	errs := make(chan error, len(requests))
	var wg sync.WaitGroup
	for _, req := range requests {
		wg.Add(1)
		go func(req AcceptChallengeRequest) {
			defer wg.Done()
			_, err := AcceptChallenge(mr, testSettings(), ch.ID, req, nil)
			errs <- err
		}(req)
	}
	wg.Wait()
	close(errs)

	var okCount, lostCount int
	for err := range errs {
		switch {
		case err == nil:
			okCount++
		case errors.Is(err, game.ErrAlreadyResolved):
			lostCount++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if okCount != 1 || lostCount != 1 {
		t.Fatalf("expected exactly one winner and one ErrAlreadyResolved, got %d/%d", okCount, lostCount)
	}

	// Only the winning accept's rewards landed.
	if len(mr.credits) != 2 {
		t.Fatalf("expected exactly one allocation (2 credits), got %+v", mr.credits)
	}
}

func TestAcceptChallenge_TunedBonusApplied(t *testing.T) {
	mr := newMockChallengeRepo()
	mr.addCard(1, 7, 300, 400, 250)
	mr.addCard(11, 8, 310, 400, 250)
	// Challenger's card carries an engine stage 2 tune: +25 power puts its
	// street score ahead of the raw 310 card.
	mr.tuned[7] = map[uint]*game.TunedCar{1: {UserID: 7, CardID: 1, EngineStage: 2}}

	opponent := uint(8)
	ch, err := CreateChallenge(mr, testSettings(), CreateChallengeRequest{
		ChallengerID: 7, OpponentID: &opponent,
		Mode: game.ModeCategory, Category: "street", CardID: 1,
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res, err := AcceptChallenge(mr, testSettings(), ch.ID, AcceptChallengeRequest{
		AcceptorID: 8, CardID: 11,
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.WinnerID == nil || *res.WinnerID != 7 {
		t.Fatalf("expected the tuned card to win, got %v", res.WinnerID)
	}
}

func TestDeclineChallenge(t *testing.T) {
	mr := newMockChallengeRepo()
	opponent := uint(8)
	ch := setupSlotChallenge(t, mr, &opponent, game.RewardXP)

	// Only the challenged player may decline a fixed challenge.
	if err := DeclineChallenge(mr, ch.ID, 9, nil); !errors.Is(err, ErrNotChallenged) {
		t.Fatalf("expected ErrNotChallenged, got %v", err)
	}
	if err := DeclineChallenge(mr, ch.ID, 7, nil); !errors.Is(err, ErrNotChallenged) {
		t.Fatalf("expected ErrNotChallenged for the challenger, got %v", err)
	}
	if err := DeclineChallenge(mr, ch.ID, 8, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored, _ := mr.GetChallengeByID(ch.ID)
	if stored.Status != game.StatusDeclined {
		t.Fatalf("expected declined, got %s", stored.Status)
	}

	// A declined challenge cannot be accepted or declined again.
	if _, err := AcceptChallenge(mr, testSettings(), ch.ID, AcceptChallengeRequest{
		AcceptorID: 8, Assignment: slotAssignment(11, 12, 13),
	}, nil); !errors.Is(err, game.ErrAlreadyResolved) {
		t.Fatalf("expected ErrAlreadyResolved, got %v", err)
	}
	if err := DeclineChallenge(mr, ch.ID, 8, nil); !errors.Is(err, game.ErrAlreadyResolved) {
		t.Fatalf("expected ErrAlreadyResolved, got %v", err)
	}
}

func TestDeclineChallenge_OpenCancelledByChallenger(t *testing.T) {
	mr := newMockChallengeRepo()
	ch := setupSlotChallenge(t, mr, nil, game.RewardXP)

	// An open challenge has no challenged party; only the challenger may
	// withdraw it.
	if err := DeclineChallenge(mr, ch.ID, 8, nil); !errors.Is(err, ErrNotChallenged) {
		t.Fatalf("expected ErrNotChallenged, got %v", err)
	}
	if err := DeclineChallenge(mr, ch.ID, 7, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored, _ := mr.GetChallengeByID(ch.ID)
	if stored.Status != game.StatusDeclined {
		t.Fatalf("expected declined, got %s", stored.Status)
	}
}

func TestGetChallenge_LazyExpiry(t *testing.T) {
	mr := newMockChallengeRepo()
	opponent := uint(8)
	ch := setupSlotChallenge(t, mr, &opponent, game.RewardXP)

	mr.mu.Lock()
	mr.challenges[ch.ID].ExpiresAt = time.Now().Add(-time.Minute)
	mr.mu.Unlock()

	got, err := GetChallenge(mr, ch.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != game.StatusExpired {
		t.Fatalf("expected expired, got %s", got.Status)
	}
	stored, _ := mr.GetChallengeByID(ch.ID)
	if stored.Status != game.StatusExpired {
		t.Fatalf("expected the expiry to be persisted, got %s", stored.Status)
	}
}
