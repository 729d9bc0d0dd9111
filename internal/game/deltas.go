package game

// XPCredit is a currency delta emitted by the reward allocator and applied
// by the persistence layer together with the challenge completion.
type XPCredit struct {
	UserID uint
	Amount int
}

// CardTransfer moves card ownership in card-wager reward mode. FromUserID
// is checked at apply time so a traded-away card fails the transfer instead
// of being silently substituted.
type CardTransfer struct {
	CardID     uint
	FromUserID uint
	ToUserID   uint
}
