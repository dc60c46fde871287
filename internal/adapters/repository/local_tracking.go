package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mamacare/tracker-service/internal/core/domain"
	"github.com/mamacare/tracker-service/internal/core/ports"
)

// TrackingRepository implementation
// Health tracking rows never leave the device, so these methods have no
// cloud counterpart.

func (r *LocalStore) SaveWeightEntry(ctx context.Context, entry *domain.WeightEntry) error {
	_, err := r.trackingCB.Execute(func() (interface{}, error) {
		return nil, r.executeWithRetry(ctx, func() error {
			query := `INSERT INTO weight_entries (id, date, weight, unit, note) VALUES (?, ?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET date = excluded.date, weight = excluded.weight,
					unit = excluded.unit, note = excluded.note`
			_, err := r.db.ExecContext(ctx, query,
				entry.ID.String(), entry.Date, entry.Weight, string(entry.Unit), entry.Note)
			return err
		})
	})
	return err
}

func (r *LocalStore) ListWeightEntries(ctx context.Context) ([]*domain.WeightEntry, error) {
	result, err := r.trackingCB.Execute(func() (interface{}, error) {
		entries := []*domain.WeightEntry{}
		err := r.executeWithRetry(ctx, func() error {
			rows, queryErr := r.db.QueryContext(ctx,
				`SELECT id, date, weight, unit, note FROM weight_entries ORDER BY date DESC`)
			if queryErr != nil {
				return queryErr
			}
			defer rows.Close()

			entries = entries[:0]
			for rows.Next() {
				var e domain.WeightEntry
				var idStr, unit string
				if err := rows.Scan(&idStr, &e.Date, &e.Weight, &unit, &e.Note); err != nil {
					return err
				}
				id, parseErr := uuid.Parse(idStr)
				if parseErr != nil {
					return fmt.Errorf("corrupt weight entry id: %w", parseErr)
				}
				e.ID = id
				e.Unit = domain.WeightUnit(unit)
				entries = append(entries, &e)
			}
			return rows.Err()
		})
		if err != nil {
			return nil, err
		}
		return entries, nil
	})

	if err != nil {
		return nil, translateErr(err)
	}
	return result.([]*domain.WeightEntry), nil
}

func (r *LocalStore) DeleteWeightEntry(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, "weight_entries", id)
}

func (r *LocalStore) SaveSymptomEntry(ctx context.Context, entry *domain.SymptomEntry) error {
	_, err := r.trackingCB.Execute(func() (interface{}, error) {
		return nil, r.executeWithRetry(ctx, func() error {
			query := `INSERT INTO symptom_entries (id, date, symptom, severity, note) VALUES (?, ?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET date = excluded.date, symptom = excluded.symptom,
					severity = excluded.severity, note = excluded.note`
			_, err := r.db.ExecContext(ctx, query,
				entry.ID.String(), entry.Date, string(entry.Symptom), string(entry.Severity), entry.Note)
			return err
		})
	})
	return err
}

func (r *LocalStore) ListSymptomEntries(ctx context.Context) ([]*domain.SymptomEntry, error) {
	result, err := r.trackingCB.Execute(func() (interface{}, error) {
		entries := []*domain.SymptomEntry{}
		err := r.executeWithRetry(ctx, func() error {
			rows, queryErr := r.db.QueryContext(ctx,
				`SELECT id, date, symptom, severity, note FROM symptom_entries ORDER BY date DESC`)
			if queryErr != nil {
				return queryErr
			}
			defer rows.Close()

			entries = entries[:0]
			for rows.Next() {
				var e domain.SymptomEntry
				var idStr, symptom, severity string
				if err := rows.Scan(&idStr, &e.Date, &symptom, &severity, &e.Note); err != nil {
					return err
				}
				id, parseErr := uuid.Parse(idStr)
				if parseErr != nil {
					return fmt.Errorf("corrupt symptom entry id: %w", parseErr)
				}
				e.ID = id
				e.Symptom = domain.SymptomType(symptom)
				e.Severity = domain.SymptomSeverity(severity)
				entries = append(entries, &e)
			}
			return rows.Err()
		})
		if err != nil {
			return nil, err
		}
		return entries, nil
	})

	if err != nil {
		return nil, translateErr(err)
	}
	return result.([]*domain.SymptomEntry), nil
}

func (r *LocalStore) DeleteSymptomEntry(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, "symptom_entries", id)
}

func (r *LocalStore) SaveKickSession(ctx context.Context, session *domain.KickCountSession) error {
	_, err := r.trackingCB.Execute(func() (interface{}, error) {
		return nil, r.executeWithRetry(ctx, func() error {
			query := `INSERT INTO kick_sessions (id, start_time, end_time, kick_count) VALUES (?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET end_time = excluded.end_time, kick_count = excluded.kick_count`
			_, err := r.db.ExecContext(ctx, query,
				session.ID.String(), session.StartTime, nullableTime(session.EndTime), session.KickCount)
			return err
		})
	})
	return err
}

func (r *LocalStore) ListKickSessions(ctx context.Context) ([]*domain.KickCountSession, error) {
	result, err := r.trackingCB.Execute(func() (interface{}, error) {
		sessions := []*domain.KickCountSession{}
		err := r.executeWithRetry(ctx, func() error {
			rows, queryErr := r.db.QueryContext(ctx,
				`SELECT id, start_time, end_time, kick_count FROM kick_sessions ORDER BY start_time DESC`)
			if queryErr != nil {
				return queryErr
			}
			defer rows.Close()

			sessions = sessions[:0]
			for rows.Next() {
				var s domain.KickCountSession
				var idStr string
				var end sql.NullTime
				if err := rows.Scan(&idStr, &s.StartTime, &end, &s.KickCount); err != nil {
					return err
				}
				id, parseErr := uuid.Parse(idStr)
				if parseErr != nil {
					return fmt.Errorf("corrupt kick session id: %w", parseErr)
				}
				s.ID = id
				s.EndTime = timePtr(end)
				sessions = append(sessions, &s)
			}
			return rows.Err()
		})
		if err != nil {
			return nil, err
		}
		return sessions, nil
	})

	if err != nil {
		return nil, translateErr(err)
	}
	return result.([]*domain.KickCountSession), nil
}

func (r *LocalStore) SaveContraction(ctx context.Context, contraction *domain.Contraction) error {
	_, err := r.trackingCB.Execute(func() (interface{}, error) {
		return nil, r.executeWithRetry(ctx, func() error {
			query := `INSERT INTO contractions (id, start_time, end_time) VALUES (?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET end_time = excluded.end_time`
			_, err := r.db.ExecContext(ctx, query,
				contraction.ID.String(), contraction.StartTime, nullableTime(contraction.EndTime))
			return err
		})
	})
	return err
}

func (r *LocalStore) ListContractions(ctx context.Context) ([]*domain.Contraction, error) {
	result, err := r.trackingCB.Execute(func() (interface{}, error) {
		contractions := []*domain.Contraction{}
		err := r.executeWithRetry(ctx, func() error {
			rows, queryErr := r.db.QueryContext(ctx,
				`SELECT id, start_time, end_time FROM contractions ORDER BY start_time DESC`)
			if queryErr != nil {
				return queryErr
			}
			defer rows.Close()

			contractions = contractions[:0]
			for rows.Next() {
				var c domain.Contraction
				var idStr string
				var end sql.NullTime
				if err := rows.Scan(&idStr, &c.StartTime, &end); err != nil {
					return err
				}
				id, parseErr := uuid.Parse(idStr)
				if parseErr != nil {
					return fmt.Errorf("corrupt contraction id: %w", parseErr)
				}
				c.ID = id
				c.EndTime = timePtr(end)
				contractions = append(contractions, &c)
			}
			return rows.Err()
		})
		if err != nil {
			return nil, err
		}
		return contractions, nil
	})

	if err != nil {
		return nil, translateErr(err)
	}
	return result.([]*domain.Contraction), nil
}

func (r *LocalStore) DeleteContractions(ctx context.Context) error {
	_, err := r.trackingCB.Execute(func() (interface{}, error) {
		return nil, r.executeWithRetry(ctx, func() error {
			_, err := r.db.ExecContext(ctx, `DELETE FROM contractions`)
			return err
		})
	})
	return err
}

func (r *LocalStore) SaveWaterIntake(ctx context.Context, entry *domain.WaterIntakeEntry) error {
	_, err := r.trackingCB.Execute(func() (interface{}, error) {
		return nil, r.executeWithRetry(ctx, func() error {
			query := `INSERT INTO water_intake (id, date, amount, unit) VALUES (?, ?, ?, ?)`
			_, err := r.db.ExecContext(ctx, query,
				entry.ID.String(), entry.Date, entry.Amount, string(entry.Unit))
			return err
		})
	})
	return err
}

func (r *LocalStore) ListWaterIntake(ctx context.Context, day time.Time) ([]*domain.WaterIntakeEntry, error) {
	dayStart := domain.DateOnly(day)
	dayEnd := dayStart.AddDate(0, 0, 1)

	result, err := r.trackingCB.Execute(func() (interface{}, error) {
		entries := []*domain.WaterIntakeEntry{}
		err := r.executeWithRetry(ctx, func() error {
			rows, queryErr := r.db.QueryContext(ctx,
				`SELECT id, date, amount, unit FROM water_intake WHERE date >= ? AND date < ? ORDER BY date ASC`,
				dayStart, dayEnd)
			if queryErr != nil {
				return queryErr
			}
			defer rows.Close()

			entries = entries[:0]
			for rows.Next() {
				var e domain.WaterIntakeEntry
				var idStr, unit string
				if err := rows.Scan(&idStr, &e.Date, &e.Amount, &unit); err != nil {
					return err
				}
				id, parseErr := uuid.Parse(idStr)
				if parseErr != nil {
					return fmt.Errorf("corrupt water intake id: %w", parseErr)
				}
				e.ID = id
				e.Unit = domain.WaterUnit(unit)
				entries = append(entries, &e)
			}
			return rows.Err()
		})
		if err != nil {
			return nil, err
		}
		return entries, nil
	})

	if err != nil {
		return nil, translateErr(err)
	}
	return result.([]*domain.WaterIntakeEntry), nil
}

func (r *LocalStore) SaveBagItem(ctx context.Context, item *domain.HospitalBagItem) error {
	_, err := r.trackingCB.Execute(func() (interface{}, error) {
		return nil, r.executeWithRetry(ctx, func() error {
			query := `INSERT INTO bag_items (id, name, category, packed) VALUES (?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET name = excluded.name, category = excluded.category,
					packed = excluded.packed`
			_, err := r.db.ExecContext(ctx, query,
				item.ID.String(), item.Name, string(item.Category), item.Packed)
			return err
		})
	})
	return err
}

func (r *LocalStore) ListBagItems(ctx context.Context) ([]*domain.HospitalBagItem, error) {
	result, err := r.trackingCB.Execute(func() (interface{}, error) {
		items := []*domain.HospitalBagItem{}
		err := r.executeWithRetry(ctx, func() error {
			rows, queryErr := r.db.QueryContext(ctx,
				`SELECT id, name, category, packed FROM bag_items ORDER BY category, name`)
			if queryErr != nil {
				return queryErr
			}
			defer rows.Close()

			items = items[:0]
			for rows.Next() {
				var item domain.HospitalBagItem
				var idStr, category string
				if err := rows.Scan(&idStr, &item.Name, &category, &item.Packed); err != nil {
					return err
				}
				id, parseErr := uuid.Parse(idStr)
				if parseErr != nil {
					return fmt.Errorf("corrupt bag item id: %w", parseErr)
				}
				item.ID = id
				item.Category = domain.BagCategory(category)
				items = append(items, &item)
			}
			return rows.Err()
		})
		if err != nil {
			return nil, err
		}
		return items, nil
	})

	if err != nil {
		return nil, translateErr(err)
	}
	return result.([]*domain.HospitalBagItem), nil
}

func (r *LocalStore) DeleteBagItem(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, "bag_items", id)
}

func (r *LocalStore) SaveAppointment(ctx context.Context, appointment *domain.Appointment) error {
	_, err := r.trackingCB.Execute(func() (interface{}, error) {
		return nil, r.executeWithRetry(ctx, func() error {
			query := `INSERT INTO appointments (id, title, date, location, doctor, notes) VALUES (?, ?, ?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET title = excluded.title, date = excluded.date,
					location = excluded.location, doctor = excluded.doctor, notes = excluded.notes`
			_, err := r.db.ExecContext(ctx, query,
				appointment.ID.String(), appointment.Title, appointment.Date,
				appointment.Location, appointment.Doctor, appointment.Notes)
			return err
		})
	})
	return err
}

func (r *LocalStore) ListAppointments(ctx context.Context) ([]*domain.Appointment, error) {
	result, err := r.trackingCB.Execute(func() (interface{}, error) {
		appointments := []*domain.Appointment{}
		err := r.executeWithRetry(ctx, func() error {
			rows, queryErr := r.db.QueryContext(ctx,
				`SELECT id, title, date, location, doctor, notes FROM appointments ORDER BY date ASC`)
			if queryErr != nil {
				return queryErr
			}
			defer rows.Close()

			appointments = appointments[:0]
			for rows.Next() {
				var a domain.Appointment
				var idStr string
				if err := rows.Scan(&idStr, &a.Title, &a.Date, &a.Location, &a.Doctor, &a.Notes); err != nil {
					return err
				}
				id, parseErr := uuid.Parse(idStr)
				if parseErr != nil {
					return fmt.Errorf("corrupt appointment id: %w", parseErr)
				}
				a.ID = id
				appointments = append(appointments, &a)
			}
			return rows.Err()
		})
		if err != nil {
			return nil, err
		}
		return appointments, nil
	})

	if err != nil {
		return nil, translateErr(err)
	}
	return result.([]*domain.Appointment), nil
}

func (r *LocalStore) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, "appointments", id)
}

// deleteByID removes one row by primary key, reporting not-found when
// nothing matched
func (r *LocalStore) deleteByID(ctx context.Context, table string, id uuid.UUID) error {
	_, err := r.trackingCB.Execute(func() (interface{}, error) {
		return nil, r.executeWithRetry(ctx, func() error {
			result, err := r.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id.String())
			if err != nil {
				return err
			}
			affected, err := result.RowsAffected()
			if err != nil {
				return err
			}
			if affected == 0 {
				return domain.ErrStorageNotFound
			}
			return nil
		})
	})
	return err
}

// Ensure LocalStore implements the interface
var _ ports.TrackingRepository = (*LocalStore)(nil)
