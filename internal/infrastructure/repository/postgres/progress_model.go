package postgres

import (
	"database/sql"
	"time"

	"github.com/treasurerun/hunt-api/internal/domain/progress"
	"github.com/treasurerun/hunt-api/internal/domain/route"
)

type progressTableModel struct {
	ID           int64          `db:"id"`
	TeamName     string         `db:"team_name"`
	PublicID     string         `db:"public_id"`
	StartCode    sql.NullString `db:"start_code"`
	StartAt      sql.NullTime   `db:"start_at"`
	Loc1Code     sql.NullString `db:"loc1_code"`
	Loc1At       sql.NullTime   `db:"loc1_at"`
	Loc2Code     sql.NullString `db:"loc2_code"`
	Loc2At       sql.NullTime   `db:"loc2_at"`
	Loc3Code     sql.NullString `db:"loc3_code"`
	Loc3At       sql.NullTime   `db:"loc3_at"`
	Loc4Code     sql.NullString `db:"loc4_code"`
	Loc4At       sql.NullTime   `db:"loc4_at"`
	Loc5Code     sql.NullString `db:"loc5_code"`
	Loc5At       sql.NullTime   `db:"loc5_at"`
	EndCode      sql.NullString `db:"end_code"`
	EndAt        sql.NullTime   `db:"end_at"`
	LockedDevice sql.NullString `db:"locked_device"`
	LockedMember string         `db:"locked_member"`
	Restricted   bool           `db:"restricted"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (m progressTableModel) toDomain() progress.Progress {
	out := progress.Progress{
		TeamName:     m.TeamName,
		TeamID:       m.PublicID,
		Start:        confirmation(m.StartCode, m.StartAt),
		End:          confirmation(m.EndCode, m.EndAt),
		LockedDevice: m.LockedDevice.String,
		LockedMember: m.LockedMember,
		Restricted:   m.Restricted,
	}

	codes := []sql.NullString{m.Loc1Code, m.Loc2Code, m.Loc3Code, m.Loc4Code, m.Loc5Code}
	times := []sql.NullTime{m.Loc1At, m.Loc2At, m.Loc3At, m.Loc4At, m.Loc5At}
	for i := 0; i < route.IntermediateCount; i++ {
		out.Locations[i] = confirmation(codes[i], times[i])
	}
	return out
}

func confirmation(code sql.NullString, at sql.NullTime) *progress.Confirmation {
	if !code.Valid {
		return nil
	}
	return &progress.Confirmation{Code: code.String, At: at.Time}
}

// slotColumns maps a slot to its code/timestamp column pair.
func slotColumns(slot progress.Slot) (string, string, bool) {
	switch slot {
	case progress.SlotStart:
		return "start_code", "start_at", true
	case progress.SlotLocation1:
		return "loc1_code", "loc1_at", true
	case progress.SlotLocation2:
		return "loc2_code", "loc2_at", true
	case progress.SlotLocation3:
		return "loc3_code", "loc3_at", true
	case progress.SlotLocation4:
		return "loc4_code", "loc4_at", true
	case progress.SlotLocation5:
		return "loc5_code", "loc5_at", true
	case progress.SlotEnd:
		return "end_code", "end_at", true
	default:
		return "", "", false
	}
}
