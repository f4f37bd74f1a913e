package query

// Status - состояние запроса экрана
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "LOADING"
	case StatusSuccess:
		return "SUCCESS"
	case StatusError:
		return "ERROR"
	default:
		return "IDLE"
	}
}

// Result - проекция запроса для рендера. Data равен nil, пока идёт загрузка
// и при ошибке; успешный пустой ответ - непустой срез нулевой длины
type Result[T any] struct {
	Data      []T
	IsLoading bool
	IsError   bool
	Err       error
}

func (r Result[T]) Status() Status {
	switch {
	case r.IsLoading:
		return StatusLoading
	case r.IsError:
		return StatusError
	case r.Data != nil:
		return StatusSuccess
	default:
		return StatusIdle
	}
}
