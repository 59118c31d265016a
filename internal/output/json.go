package output

import (
	"io"

	"github.com/tidwall/sjson"

	"tasklist/internal/service"
	"tasklist/internal/tasklist"
)

// TasksJSON returns the tasks of state as a JSON array of their raw records.
// Only a populated state lists tasks; every other phase yields [].
func TasksJSON(state tasklist.State) ([]byte, error) {
	out := []byte(`[]`)
	if state.Phase() != tasklist.PhasePopulated {
		return out, nil
	}
	for _, task := range state.Tasks {
		raw, err := taskRecord(task)
		if err != nil {
			return nil, err
		}
		out, err = sjson.SetRawBytes(out, "-1", raw)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// taskRecord is the stored record of task, or a minimal one when the task
// was not decoded from a response.
func taskRecord(task service.Task) ([]byte, error) {
	if len(task.Raw) > 0 {
		return task.Raw, nil
	}
	raw, err := sjson.SetBytes([]byte(`{}`), "id", task.ID)
	if err != nil {
		return nil, err
	}
	return sjson.SetBytes(raw, "name", task.Name)
}

// StateJSON returns the state as an object with phase, error and tasks.
func StateJSON(state tasklist.State) ([]byte, error) {
	tasks, err := TasksJSON(state)
	if err != nil {
		return nil, err
	}
	out := []byte(`{}`)
	out, err = sjson.SetBytes(out, "phase", state.Phase().String())
	if err != nil {
		return nil, err
	}
	if state.Err != "" {
		out, err = sjson.SetBytes(out, "error", state.Err)
		if err != nil {
			return nil, err
		}
	}
	return sjson.SetRawBytes(out, "tasks", tasks)
}

// RenderJSON writes TasksJSON followed by a newline.
func RenderJSON(w io.Writer, state tasklist.State) error {
	data, err := TasksJSON(state)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
