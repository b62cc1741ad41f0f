package services

import (
	"encoding/json"
	"log"
	"sort"
	"sync"

	"github.com/avelinec/wayfarer/internal/models"
	"github.com/avelinec/wayfarer/internal/storagekeys"
	"github.com/google/uuid"
)

// timelessSortKey sorts items without a time after any valid "HH:mm".
const timelessSortKey = "99:99"

type TodoKV interface {
	Get(key string) (string, bool, error)
	Set(key string, value string) error
}

// TodoReminders is the slice of the reminder scheduler the ledger drives on
// every create, toggle and delete.
type TodoReminders interface {
	Schedule(dateISO string, timeOfDay string, title string) (string, error)
	Cancel(handle string)
	StillFuture(dateISO string, timeOfDay string) bool
}

// TodoInput is a new item before the ledger assigns an id and a reminder.
type TodoInput struct {
	Title string
	Date  string
	Time  string
	Notes string
}

// TodoService is the app-global to-do ledger: an in-memory collection loaded
// once at startup and rewritten to storage in full on every mutation. Write
// failures are logged and the in-memory state kept, so memory and storage can
// diverge until the next successful write.
type TodoService struct {
	kv        TodoKV
	reminders TodoReminders

	mu    sync.Mutex
	todos []models.Todo
}

func NewTodoService(kv TodoKV, reminders TodoReminders) *TodoService {
	service := &TodoService{kv: kv, reminders: reminders}
	service.todos = service.loadLedger()
	return service
}

// Add stores a new item, newest first. When the item carries both a date and
// a time, a reminder is attempted; a scheduling failure leaves the item
// pending without a reminder rather than failing the add.
func (service *TodoService) Add(input TodoInput) models.Todo {
	item := models.Todo{
		ID:    uuid.NewString(),
		Title: input.Title,
		Date:  input.Date,
		Time:  input.Time,
		Notes: input.Notes,
	}

	if item.Date != "" && item.Time != "" {
		handle, err := service.reminders.Schedule(item.Date, item.Time, item.Title)
		if err != nil {
			log.Printf("todo ledger: reminder for new item not scheduled: %v", err)
		} else {
			item.NotifID = handle
		}
	}

	service.mu.Lock()
	defer service.mu.Unlock()
	service.todos = append([]models.Todo{item}, service.todos...)
	service.persistLedger()
	return item
}

// Toggle flips done on an item; unknown ids are a silent no-op. The next
// record is computed first and the reminder action derived from that single
// value, then the ledger is persisted.
func (service *TodoService) Toggle(id string) {
	service.mu.Lock()
	defer service.mu.Unlock()

	index := service.indexOf(id)
	if index < 0 {
		return
	}

	next := service.todos[index]
	next.Done = !next.Done

	if next.Done {
		service.reminders.Cancel(next.NotifID)
		next.NotifID = ""
	} else {
		next.NotifID = ""
		if next.Date != "" && next.Time != "" && service.reminders.StillFuture(next.Date, next.Time) {
			handle, err := service.reminders.Schedule(next.Date, next.Time, next.Title)
			if err != nil {
				log.Printf("todo ledger: reminder not rescheduled on un-complete: %v", err)
			} else {
				next.NotifID = handle
			}
		}
	}

	service.todos[index] = next
	service.persistLedger()
}

// Remove cancels any live reminder and deletes the item. Unknown ids are a
// no-op.
func (service *TodoService) Remove(id string) {
	service.mu.Lock()
	defer service.mu.Unlock()

	index := service.indexOf(id)
	if index < 0 {
		return
	}

	service.reminders.Cancel(service.todos[index].NotifID)
	service.todos = append(service.todos[:index], service.todos[index+1:]...)
	service.persistLedger()
}

// ListByDate returns the items for one calendar day ordered by time
// ascending, timeless items last, insertion order preserved among equal keys.
func (service *TodoService) ListByDate(date string) []models.Todo {
	service.mu.Lock()
	defer service.mu.Unlock()

	matched := make([]models.Todo, 0)
	for _, item := range service.todos {
		if item.Date == date {
			matched = append(matched, item)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return todoSortKey(matched[i]) < todoSortKey(matched[j])
	})
	return matched
}

// All returns a snapshot of the whole ledger, newest first.
func (service *TodoService) All() []models.Todo {
	service.mu.Lock()
	defer service.mu.Unlock()

	snapshot := make([]models.Todo, len(service.todos))
	copy(snapshot, service.todos)
	return snapshot
}

func (service *TodoService) indexOf(id string) int {
	for index, item := range service.todos {
		if item.ID == id {
			return index
		}
	}
	return -1
}

func (service *TodoService) loadLedger() []models.Todo {
	raw, found, err := service.kv.Get(storagekeys.Todos())
	if err != nil || !found {
		return []models.Todo{}
	}

	todos := make([]models.Todo, 0)
	if json.Unmarshal([]byte(raw), &todos) != nil {
		return []models.Todo{}
	}
	return todos
}

func (service *TodoService) persistLedger() {
	encoded, err := json.Marshal(service.todos)
	if err != nil {
		log.Printf("todo ledger: encode failed: %v", err)
		return
	}
	if err := service.kv.Set(storagekeys.Todos(), string(encoded)); err != nil {
		log.Printf("todo ledger: persist failed: %v", err)
	}
}

func todoSortKey(item models.Todo) string {
	if item.Time == "" {
		return timelessSortKey
	}
	return item.Time
}
