package controllers

import (
	"errors"
	"net/http"

	"github.com/abhijan2402/tomarket-admin/database"
	"github.com/abhijan2402/tomarket-admin/lifecycle"
	"github.com/abhijan2402/tomarket-admin/models"
	"github.com/abhijan2402/tomarket-admin/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// payoutStore isolates the payout queries so claim interleavings can be
// exercised without a database.
type payoutStore interface {
	ApprovedProofs(limit int) ([]models.Proof, error)
	TaskFor(taskID uint) (models.Task, error)
	GroupReward(taskID uint) (float64, error)
	Claim(proof models.Proof, reward float64, note string) error
}

type gormPayoutStore struct{ db *gorm.DB }

func (s gormPayoutStore) ApprovedProofs(limit int) ([]models.Proof, error) {
	var proofs []models.Proof
	err := s.db.Where("status = ?", lifecycle.ProofApproved).
		Order("timestamp ASC").
		Limit(limit).
		Find(&proofs).Error
	return proofs, err
}

func (s gormPayoutStore) TaskFor(taskID uint) (models.Task, error) {
	var task models.Task
	err := s.db.First(&task, taskID).Error
	return task, err
}

func (s gormPayoutStore) GroupReward(taskID uint) (float64, error) {
	var sum float64
	err := s.db.Model(&models.SubTask{}).
		Where("task_id = ?", taskID).
		Select("COALESCE(SUM(reward),0)").
		Scan(&sum).Error
	return sum, err
}

func (s gormPayoutStore) Claim(proof models.Proof, reward float64, note string) error {
	proofID := proof.ID
	return s.db.Transaction(func(tx *gorm.DB) error {
		// the conditional write doubles as the claim guard under concurrent
		// payout runs
		if err := models.ApplyProofTransition(tx, proof.ID, lifecycle.ProofApproved, lifecycle.ProofClaimed, nil); err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).
			Where("id = ?", proof.UserID).
			Update("points", gorm.Expr("points + ?", reward)).Error; err != nil {
			return err
		}
		return tx.Create(&models.RewardTransaction{
			UserID:    proof.UserID,
			ProofID:   &proofID,
			Amount:    reward,
			Type:      models.TxTaskReward,
			Reference: utils.GenerateReference(proof.UserID),
			Note:      &note,
		}).Error
	})
}

// runPayout claims each approved proof: credit the reward, write the ledger
// row, move the proof to claimed. A proof whose claim cannot complete is
// skipped and stays approved for the next run; the reward is never lost to a
// partial failure.
func runPayout(store payoutStore, limit int) (eligible, claimed int, paid float64, err error) {
	proofs, err := store.ApprovedProofs(limit)
	if err != nil {
		return 0, 0, 0, err
	}

	for _, proof := range proofs {
		task, err := store.TaskFor(proof.TaskID)
		if err != nil {
			logrus.WithField("proof_id", proof.ID).Warn("payout: task missing, skipping")
			continue
		}

		reward := task.Reward
		if task.Kind == lifecycle.KindGroup {
			// group rewards are the sum of the sub-task rewards
			sum, err := store.GroupReward(task.ID)
			if err != nil {
				logrus.WithError(err).WithField("proof_id", proof.ID).Error("payout: reward sum failed, skipping")
				continue
			}
			reward = sum
		}
		reward = utils.RoundFloat(reward, 2)

		err = store.Claim(proof, reward, "Task reward: "+task.Title)
		if errors.Is(err, models.ErrStale) {
			continue
		}
		if err != nil {
			logrus.WithError(err).WithField("proof_id", proof.ID).Error("payout: claim failed")
			continue
		}
		claimed++
		paid += reward
	}
	return len(proofs), claimed, paid, nil
}

// PayoutHandler claims approved submissions on behalf of the scheduler,
// protected by the cron key.
//
// POST /v1/cron/payouts
func PayoutHandler(w http.ResponseWriter, r *http.Request) {
	eligible, claimed, paid, err := runPayout(gormPayoutStore{db: database.DB}, 500)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
		return
	}
	paid = utils.RoundFloat(paid, 2)

	logrus.WithFields(logrus.Fields{
		"eligible": eligible,
		"claimed":  claimed,
		"paid":     paid,
	}).Info("payout run finished")

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Payout run finished",
		Data: map[string]interface{}{
			"eligible": eligible,
			"claimed":  claimed,
			"paid":     paid,
		},
	})
}
