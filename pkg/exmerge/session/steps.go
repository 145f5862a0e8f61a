package session

// Step identifies a stage of the merge workflow.
type Step int

const (
	StepUpload Step = iota + 1
	StepTemplate
	StepMapping
	StepGenerate
)

// StepStatus describes a step relative to the active one.
type StepStatus string

const (
	StatusActive    StepStatus = "active"
	StatusCompleted StepStatus = "completed"
	StatusAvailable StepStatus = "available"
	StatusDisabled  StepStatus = "disabled"
)

// StepInfo describes a step for display.
type StepInfo struct {
	ID          Step       `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      StepStatus `json:"status"`
}

var stepTitles = map[Step][2]string{
	StepUpload:   {"Cargar Excel", "Sube tu archivo Excel con los datos"},
	StepTemplate: {"Crear Plantilla", "Escribe tu plantilla de correo"},
	StepMapping:  {"Mapear Campos", "Conecta los campos con las columnas"},
	StepGenerate: {"Generar Correos", "Revisa y exporta tus correos"},
}

// Step returns the active step.
func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// CanProceedTo reports whether step's prerequisites are met.
func (s *Session) CanProceedTo(step Step) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canProceedLocked(step)
}

func (s *Session) canProceedLocked(step Step) bool {
	switch step {
	case StepUpload:
		return true
	case StepTemplate:
		return s.data != nil
	case StepMapping:
		return s.data != nil && !s.tpl.IsBlank()
	case StepGenerate:
		return s.data != nil && !s.tpl.IsBlank() && s.mapping.Len() > 0
	}
	return false
}

// GoTo activates step if its prerequisites are met.
func (s *Session) GoTo(step Step) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.canProceedLocked(step) {
		return false
	}
	s.step = step
	return true
}

// Next advances to the following step when allowed.
func (s *Session) Next() (Step, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.step + 1
	if next > StepGenerate || !s.canProceedLocked(next) {
		return s.step, false
	}
	s.step = next
	return next, true
}

// Previous goes back one step.
func (s *Session) Previous() (Step, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step <= StepUpload {
		return s.step, false
	}
	s.step--
	return s.step, true
}

// StepStatus returns the status of step relative to the active step.
func (s *Session) StepStatus(step Step) StepStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stepStatusLocked(step)
}

func (s *Session) stepStatusLocked(step Step) StepStatus {
	switch {
	case step == s.step:
		return StatusActive
	case step < s.step:
		return StatusCompleted
	case s.canProceedLocked(step):
		return StatusAvailable
	}
	return StatusDisabled
}

// Steps returns every step with its current status.
func (s *Session) Steps() []StepInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	steps := make([]StepInfo, 0, len(stepTitles))
	for id := StepUpload; id <= StepGenerate; id++ {
		t := stepTitles[id]
		steps = append(steps, StepInfo{ID: id, Title: t[0], Description: t[1], Status: s.stepStatusLocked(id)})
	}
	return steps
}
