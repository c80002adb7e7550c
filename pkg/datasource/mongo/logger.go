package mongo

import (
	"encoding/json"
	"fmt"
	"io"
)

// QueryLog is the debug entry written for every operation against the database.
type QueryLog struct {
	Query      string `json:"query"`
	Duration   int64  `json:"duration"`
	Collection string `json:"collection,omitempty"`
	Filter     any    `json:"filter,omitempty"`
	ID         any    `json:"id,omitempty"`
	Update     any    `json:"update,omitempty"`
}

func (ql *QueryLog) PrettyPrint(writer io.Writer) {
	if ql.Filter == nil {
		ql.Filter = ""
	}

	if ql.ID == nil {
		ql.ID = ""
	}

	if ql.Update == nil {
		ql.Update = ""
	}

	fmt.Fprintf(writer, "\u001B[38;5;8m%-32s \u001B[38;5;206m%-6s\u001B[0m %8d\u001B[38;5;8mµs\u001B[0m %s\n",
		ql.Query, "MONGO", ql.Duration,
		ql.String())
}

func (ql *QueryLog) String() string {
	return fmt.Sprintf("%v %v %v %v", ql.Collection, render(ql.Filter), render(ql.ID), render(ql.Update))
}

func render(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}

	return string(b)
}
