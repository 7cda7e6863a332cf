package data

import "fmt"

// LinkID names the origin of a piece of data uniquely within one run.
// Step outputs use "<stepID>.<outputName>", pipeline seeds use
// "initial.<inputName>", and fan-out expansion derives instance-qualified
// ids from these (see ItemLinkID and InstanceLinkID).
type LinkID string

// SeedOwner is the reserved owner id for pipeline-level seed inputs.
const SeedOwner = "initial"

// OutputLinkID identifies the named output of a step.
func OutputLinkID(stepID, output string) LinkID {
	return LinkID(stepID + "." + output)
}

// SeedLinkID identifies a pipeline-level seed input.
func SeedLinkID(input string) LinkID {
	return OutputLinkID(SeedOwner, input)
}

// ItemLinkID identifies the i'th element record fanned out of the collection
// behind source.
func ItemLinkID(source LinkID, i int) LinkID {
	return LinkID(fmt.Sprintf("%s[%d]", source, i))
}

// InstanceLinkID identifies the named output of the i'th fan-out instance
// of a step.
func InstanceLinkID(stepID string, i int, output string) LinkID {
	return OutputLinkID(InstanceStepID(stepID, i), output)
}

// InstanceStepID returns the qualified step id of the i'th fan-out instance.
func InstanceStepID(stepID string, i int) string {
	return fmt.Sprintf("%s[%d]", stepID, i)
}

// Mode controls how a consumer receives a collection input: as one record
// holding the whole collection, or as one process instance per element.
type Mode string

const (
	ModeTogether     Mode = "together"
	ModeIndividually Mode = "individually"
)

// Link ties a record to a named port of a process instance. An output link
// describes the port that produces a record; an input link describes a port
// that consumes one, with LinkID pointing at the producing side. Mode is
// carried for collection inputs and plays no part in matching.
type Link struct {
	// OwnerID is the step instance that owns the port.
	OwnerID string
	// Name is the port name local to the owner.
	Name string
	// Type is the data type flowing through the port.
	Type Type
	// LinkID names the data origin this port is wired to. For output links
	// it is derived from the owner and port name.
	LinkID LinkID
	// IsInput marks the consuming variant.
	IsInput bool
	// Mode is the collection consumption mode for input links.
	Mode Mode
}

// Output builds the producing-side link for a step's named output port.
func Output(ownerID, name string, t Type) Link {
	return Link{
		OwnerID: ownerID,
		Name:    name,
		Type:    t,
		LinkID:  OutputLinkID(ownerID, name),
	}
}

// OutputAs builds a producing-side link with an explicit link id, for records
// that no declared step port produces (seed inputs, fan-out item records).
func OutputAs(ownerID, name string, t Type, id LinkID) Link {
	return Link{OwnerID: ownerID, Name: name, Type: t, LinkID: id}
}

// Input builds the consuming-side link for a step's named input port wired
// to the given source.
func Input(ownerID, name string, t Type, source LinkID, mode Mode) Link {
	return Link{
		OwnerID: ownerID,
		Name:    name,
		Type:    t,
		LinkID:  source,
		IsInput: true,
		Mode:    mode,
	}
}

// Matches reports whether two links carry the same port identity. Identity
// is the four-tuple (OwnerID, Name, Type, LinkID); mode and direction do
// not participate.
func (l Link) Matches(other Link) bool {
	return l.OwnerID == other.OwnerID &&
		l.Name == other.Name &&
		l.Type == other.Type &&
		l.LinkID == other.LinkID
}

// String renders the link for logging.
func (l Link) String() string {
	side := "out"
	if l.IsInput {
		side = "in"
	}
	return fmt.Sprintf("%s:%s.%s(%s)->%s", side, l.OwnerID, l.Name, l.Type, l.LinkID)
}
