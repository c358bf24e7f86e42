package consultation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const consultationColumns = `id, appointment_id, doctor_id, patient_id, date, symptoms, blood_pressure, height, weight, description, notes, status, created_at`

func scanConsultation(row pgx.Row) (*Consultation, error) {
	var c Consultation

	err := row.Scan(
		&c.ID,
		&c.AppointmentID,
		&c.DoctorID,
		&c.PatientID,
		&c.Date,
		&c.Symptoms,
		&c.BloodPressure,
		&c.Height,
		&c.Weight,
		&c.Description,
		&c.Notes,
		&c.Status,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrConsultationNotFound
		}
		return nil, err
	}

	return &c, nil
}

func (r *PgRepository) CreateCompleting(ctx context.Context, c *Consultation) (*Consultation, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin consultation tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Compare-and-set on the appointment status keeps the one-consultation
	// invariant even under concurrent create attempts.
	tag, err := tx.Exec(ctx, `
		UPDATE appointments
		SET status = 'Completed',
		    updated_at = now()
		WHERE id = $1
		  AND status = 'Booked'
	`, c.AppointmentID)
	if err != nil {
		return nil, fmt.Errorf("complete appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrAppointmentNotBooked
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO consultations (id, appointment_id, doctor_id, patient_id, date, symptoms, blood_pressure, height, weight, description, notes, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now())
		RETURNING `+consultationColumns+`
	`, c.ID, c.AppointmentID, c.DoctorID, c.PatientID, c.Date, c.Symptoms, c.BloodPressure, c.Height, c.Weight, c.Description, c.Notes, c.Status)

	created, err := scanConsultation(row)
	if err != nil {
		return nil, fmt.Errorf("insert consultation: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit consultation tx: %w", err)
	}

	return created, nil
}

func (r *PgRepository) GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*Consultation, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+consultationColumns+`
		FROM consultations
		WHERE appointment_id = $1
	`, appointmentID)
	return scanConsultation(row)
}

func (r *PgRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]Consultation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+consultationColumns+`
		FROM consultations
		WHERE patient_id = $1
		ORDER BY date DESC
	`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Consultation
	for rows.Next() {
		c, err := scanConsultation(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
