package main

import (
	"time"

	"github.com/veldt-games/riposte/internal/constants"
	"github.com/veldt-games/riposte/internal/logging"
	"github.com/veldt-games/riposte/internal/service"
	"github.com/veldt-games/riposte/internal/storage"
)

// startTimeoutScanner periodically finishes battles whose planning
// deadline passed. Expired battles end with no winner and never count
// toward player stats.
func startTimeoutScanner(repo storage.Repository) {
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			recs, err := repo.FindTimedOutBattles(time.Now())
			if err != nil {
				logging.Error("timeout scanner failed", err, nil)
				continue
			}
			for i := range recs {
				rec, err := repo.GetBattleByID(recs[i].ID)
				if err != nil {
					continue
				}
				if err := service.HandleTimedOutBattle(repo, rec); err != nil {
					logging.Error("failed to expire battle", err, logging.Fields{constants.LogFieldBattleID: rec.ID})
				}
			}
		}
	}()
}
