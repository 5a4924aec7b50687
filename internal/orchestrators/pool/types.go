package pool

// GetActionPointsInput identifies a guild pool.
type GetActionPointsInput struct {
	GuildID string
}

// GetActionPointsOutput reports the pool state.
type GetActionPointsOutput struct {
	Points int
	Max    int
}

// AddActionPointsInput adds to the pool.
type AddActionPointsInput struct {
	GuildID string
	Amount  int
}

// AddActionPointsOutput reports the pool state after the add. Wasted
// is the amount lost to the cap.
type AddActionPointsOutput struct {
	Points int
	Max    int
	Wasted int
}

// SpendActionPointsInput removes from the pool.
type SpendActionPointsInput struct {
	GuildID string
	Amount  int
}

// SpendActionPointsOutput reports the pool state after the spend.
type SpendActionPointsOutput struct {
	Points int
	Max    int
}

// SetActionPointsInput overwrites the pool. Values clamp to the pool
// bounds.
type SetActionPointsInput struct {
	GuildID string
	Points  int
}

// SetActionPointsOutput reports the pool state after the set.
type SetActionPointsOutput struct {
	Points int
	Max    int
}

// GetLuckInput identifies a character.
type GetLuckInput struct {
	GuildID string
	UserID  string
}

// GetLuckOutput reports current and maximum luck.
type GetLuckOutput struct {
	Points int
	Max    int
}

// SpendLuckInput removes luck points. Zero Amount means one point.
type SpendLuckInput struct {
	GuildID string
	UserID  string
	Amount  int
}

// SpendLuckOutput reports luck after the spend.
type SpendLuckOutput struct {
	Points int
	Max    int
}

// AddLuckInput adds luck points, clamped to the luck attribute.
type AddLuckInput struct {
	GuildID string
	UserID  string
	Amount  int
}

// AddLuckOutput reports luck after the add.
type AddLuckOutput struct {
	Points int
	Max    int
}

// SetLuckInput overwrites the luck balance. Values clamp to the luck
// attribute.
type SetLuckInput struct {
	GuildID string
	UserID  string
	Points  int
}

// SetLuckOutput reports luck after the set.
type SetLuckOutput struct {
	Points int
	Max    int
}

// RestoreLuckInput refills luck to the attribute maximum.
type RestoreLuckInput struct {
	GuildID string
	UserID  string
}

// RestoreLuckOutput reports luck after the restore.
type RestoreLuckOutput struct {
	Points int
	Max    int
}
