package entity

// Task tarea de la lista interna de pendientes.
type Task struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}
