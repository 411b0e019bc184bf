package entity

import (
	"fmt"
	"time"
)

// MarketSchedule franja de apertura de un mercado para un día de la semana.
type MarketSchedule struct {
	ID        string
	MarketID  string
	DayOfWeek int    // 0 = domingo … 6 = sábado (time.Weekday)
	OpenTime  string // "HH:MM"
	CloseTime string // "HH:MM"
}

// Validate comprueba día válido, formato HH:MM y apertura anterior al cierre.
func (s MarketSchedule) Validate() error {
	if s.DayOfWeek < int(time.Sunday) || s.DayOfWeek > int(time.Saturday) {
		return fmt.Errorf("día %d fuera de rango 0..6", s.DayOfWeek)
	}
	open, err := time.Parse("15:04", s.OpenTime)
	if err != nil {
		return fmt.Errorf("hora de apertura %q: formato HH:MM", s.OpenTime)
	}
	closeAt, err := time.Parse("15:04", s.CloseTime)
	if err != nil {
		return fmt.Errorf("hora de cierre %q: formato HH:MM", s.CloseTime)
	}
	if !open.Before(closeAt) {
		return fmt.Errorf("la apertura (%s) debe ser anterior al cierre (%s)", s.OpenTime, s.CloseTime)
	}
	return nil
}
