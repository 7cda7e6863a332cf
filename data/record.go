package data

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Record is one unit of data flowing through a run. It is created exactly
// once, either as a placeholder for a declared output or fully instantiated
// for a seed input, and is never deleted. The payload arrives through the
// one-way Instantiate transition; consumer links accumulate as downstream
// instances wire themselves to the record.
type Record struct {
	// ID is the unique record identity within the store.
	ID string
	// Payload is the data value. Meaningful only once Instantiated is true.
	Payload any
	// Instantiated reports whether the payload has arrived.
	Instantiated bool
	// IsCollection marks records whose payload fans out per element.
	IsCollection bool
	// OutputLink is the single producing-side link, fixed at creation.
	OutputLink Link
	// InputLinks are the consuming-side links attached so far.
	InputLinks []Link

	CreatedAt      time.Time
	InstantiatedAt time.Time
}

// NewRecord creates an empty placeholder record for the given output link.
func NewRecord(output Link) Record {
	return Record{
		ID:           uuid.NewString(),
		IsCollection: output.Type == TypeFrameCollection,
		OutputLink:   output,
		CreatedAt:    time.Now(),
	}
}

// NewInstantiatedRecord creates a record that carries its payload from the
// start, as seed inputs and fan-out item records do.
func NewInstantiatedRecord(output Link, payload any) Record {
	rec := NewRecord(output)
	rec.Payload = payload
	rec.Instantiated = true
	rec.InstantiatedAt = rec.CreatedAt
	return rec
}

// Instantiate attaches the payload to a placeholder record. The transition
// is one-way; instantiating twice is an error.
func (r *Record) Instantiate(payload any) error {
	if r.Instantiated {
		return fmt.Errorf("data: record %s already instantiated", r.ID)
	}
	r.Payload = payload
	r.Instantiated = true
	r.InstantiatedAt = time.Now()
	return nil
}

// AttachInput registers a consumer port on the record.
func (r *Record) AttachInput(l Link) {
	r.InputLinks = append(r.InputLinks, l)
}

// clone returns a copy that shares no mutable state with the receiver.
// The payload itself is shared; producers hand ownership to the store and
// must not mutate it afterwards.
func (r Record) clone() Record {
	out := r
	if r.InputLinks != nil {
		out.InputLinks = append([]Link(nil), r.InputLinks...)
	}
	return out
}
