package repository

import (
	"context"
	"database/sql"

	"github.com/reklik/reklik-server/internal/model"
)

// RewardRepo persists reward point grants.
type RewardRepo struct{ DB *sql.DB }

func NewRewardRepo(db *sql.DB) *RewardRepo { return &RewardRepo{DB: db} }

// Create inserts a reward and returns it with the assigned ID.
func (r *RewardRepo) Create(ctx context.Context, w model.Reward) (model.Reward, error) {
	var scanLogID any
	if w.ScanLogID != 0 {
		scanLogID = w.ScanLogID
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO rewards (user_id, points_earned, reason, scan_log_id, awarded_at) VALUES (?,?,?,?,?)",
		w.UserID, w.PointsEarned, w.Reason, scanLogID, w.AwardedAt)
	if err != nil {
		return model.Reward{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Reward{}, err
	}
	w.ID = uint64(id)
	return w, nil
}

// ListByUser returns a user's rewards, most recent first.
func (r *RewardRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Reward, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,user_id,points_earned,reason,scan_log_id,awarded_at FROM rewards WHERE user_id=? ORDER BY awarded_at DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rewards := []model.Reward{}
	for rows.Next() {
		var w model.Reward
		var scanLogID sql.NullInt64
		if err := rows.Scan(&w.ID, &w.UserID, &w.PointsEarned, &w.Reason, &scanLogID, &w.AwardedAt); err != nil {
			return nil, err
		}
		w.ScanLogID = uint64(scanLogID.Int64)
		rewards = append(rewards, w)
	}
	return rewards, rows.Err()
}

// TotalPoints returns the sum of a user's earned points.
func (r *RewardRepo) TotalPoints(ctx context.Context, userID uint64) (int, error) {
	var total int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(points_earned),0) FROM rewards WHERE user_id=?", userID).Scan(&total)
	return total, err
}
