package hoststruct

import (
	"github.com/jhump/protoreflect/dynamic"

	"github.com/funvibe/exprlang/internal/types"
)

// structOps implements types.StructOps (§3.1) over a dynamic.Message, the
// same wrapping the teacher does for gRPC responses in dynamicMessageToObject
// (internal/evaluator/builtins_grpc.go), except lookups here are lazy and
// per-field rather than eagerly converting the whole message to a record on
// construction — a struct value here may go unselected entirely.
type structOps struct {
	msg      *dynamic.Message
	registry *Registry
}

func (s *structOps) TypeName() string {
	return s.msg.GetMessageDescriptor().GetName()
}

func (s *structOps) HasField(name string) bool {
	fd := s.msg.GetMessageDescriptor().FindFieldByName(name)
	if fd == nil {
		return false
	}
	return s.msg.HasField(fd)
}

func (s *structOps) Field(name string) (types.Value, bool) {
	fd := s.msg.GetMessageDescriptor().FindFieldByName(name)
	if fd == nil {
		return nil, false
	}
	raw := s.msg.GetField(fd)
	return fromProtoValue(raw, fd, s.registry), true
}

func (s *structOps) FieldNames() []string {
	fds := s.msg.GetMessageDescriptor().GetFields()
	names := make([]string, len(fds))
	for i, fd := range fds {
		names[i] = fd.GetName()
	}
	return names
}

// Equal implements §3.1's struct equality by comparing the underlying wire
// encoding, which two dynamic messages of the same descriptor with equal
// field values always produce deterministically (proto3 has no map/set
// ordering ambiguity for this purpose since dynamic.Message.Marshal sorts
// fields by number).
func (s *structOps) Equal(other types.Value) bool {
	o, ok := other.(*types.StructValue)
	if !ok {
		return false
	}
	oo, ok := o.Ops.(*structOps)
	if !ok {
		return false
	}
	if s.TypeName() != oo.TypeName() {
		return false
	}
	sb, err1 := s.msg.Marshal()
	ob, err2 := oo.msg.Marshal()
	if err1 != nil || err2 != nil {
		return false
	}
	if len(sb) != len(ob) {
		return false
	}
	for i := range sb {
		if sb[i] != ob[i] {
			return false
		}
	}
	return true
}
