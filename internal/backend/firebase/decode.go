package firebase

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"github.com/xeipuuv/gojsonschema"

	"tasklist/internal/service"
)

// entrySchema is the shape every entry value must have to become a task.
const entrySchema = `{
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"}
	}
}`

var compiledEntrySchema = mustSchema(entrySchema)

func mustSchema(s string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(fmt.Sprintf("firebase: invalid entry schema: %v", err))
	}
	return schema
}

// DecodeTasks converts a tasks.json response body into an ordered task list.
//
// A body of null (or nothing) means the collection is empty. An object yields
// one task per entry in the order the entries appear in the body; an array,
// which the store returns when keys are sequential integers, uses the index
// as the key and skips null holes. Entries that fail entrySchema are dropped
// and reported on logger. Any other top-level value, including false, 0 and
// "", is a *service.FetchError.
func DecodeTasks(body []byte, logger *log.Logger) ([]service.Task, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, nil
	}
	if !gjson.ValidBytes(body) {
		return nil, service.NewFetchError(errors.New("malformed response body"))
	}

	root := gjson.ParseBytes(body)
	var entries []entry
	switch {
	case root.Type == gjson.Null:
		return nil, nil
	case root.IsObject():
		entries = objectEntries(root)
	case root.IsArray():
		entries = arrayEntries(root)
	default:
		return nil, service.NewFetchError(fmt.Errorf("unexpected response type: %s", root.Type))
	}

	tasks := make([]service.Task, 0, len(entries))
	for _, e := range entries {
		task, err := decodeEntry(e)
		if err != nil {
			logger.Printf("warning: skipping task %q: %v", e.key, err)
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

type entry struct {
	key   string
	value gjson.Result
}

// objectEntries lists the members of obj in document order.
// A repeated key keeps its first position and takes the last value.
func objectEntries(obj gjson.Result) []entry {
	var entries []entry
	index := make(map[string]int)
	obj.ForEach(func(k, v gjson.Result) bool {
		key := k.String()
		if i, ok := index[key]; ok {
			entries[i].value = v
			return true
		}
		index[key] = len(entries)
		entries = append(entries, entry{key: key, value: v})
		return true
	})
	return entries
}

func arrayEntries(arr gjson.Result) []entry {
	var entries []entry
	i := 0
	arr.ForEach(func(_, v gjson.Result) bool {
		if v.Type != gjson.Null {
			entries = append(entries, entry{key: strconv.Itoa(i), value: v})
		}
		i++
		return true
	})
	return entries
}

func decodeEntry(e entry) (service.Task, error) {
	result, err := compiledEntrySchema.Validate(gojsonschema.NewStringLoader(e.value.Raw))
	if err != nil {
		return service.Task{}, err
	}
	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return service.Task{}, fmt.Errorf("invalid entry: %s", strings.Join(problems, "; "))
	}

	raw, err := sjson.SetBytes([]byte(e.value.Raw), "id", e.key)
	if err != nil {
		return service.Task{}, err
	}
	return service.Task{
		ID:   e.key,
		Name: lastMember(e.value, "name").String(),
		Raw:  raw,
	}, nil
}

// lastMember returns the last member of obj named key. Validation decodes the
// entry with the last duplicate winning, so reads must agree with it.
func lastMember(obj gjson.Result, key string) gjson.Result {
	var found gjson.Result
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			found = v
		}
		return true
	})
	return found
}
