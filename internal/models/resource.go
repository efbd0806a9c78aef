package models

// CalendarScoped is implemented by every entity that resolves to an owning
// calendar for access-control purposes.
type CalendarScoped interface {
	OwningCalendarID() uint
}

func (c *Calendar) OwningCalendarID() uint      { return c.ID }
func (e *Event) OwningCalendarID() uint         { return e.CalendarID }
func (a *Availability) OwningCalendarID() uint  { return a.CalendarID }
func (s *CalendarShare) OwningCalendarID() uint { return s.CalendarID }
