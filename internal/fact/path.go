package fact

import (
	"strconv"
	"strings"

	"arttrace/internal/token"
)

// Reserved names of the runtime's own instances.
const (
	TopCapsulePath = "application"
	SystemPath     = "Top"
	SystemTypeName = "RTSupertype"
	TimerPath      = "specials"
	TimerTypeName  = "RTTimerActor"
)

// StructureString renders a structure expression: names are joined with '.',
// an index is appended to the preceding element as "[n]".
func StructureString(expr []token.Token) string {
	var sb strings.Builder
	for i, tok := range expr {
		if tok.Kind == token.Number {
			sb.WriteByte('[')
			sb.WriteString(strconv.FormatUint(tok.Num, 10))
			sb.WriteByte(']')
			continue
		}
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(tok.Text)
	}
	return sb.String()
}

// Path renders the instance's structure expression.
func (d *InstanceDecl) Path() string {
	return StructureString(d.Structure)
}

// IsTopCapsule reports whether the instance is the application's top capsule.
func (d *InstanceDecl) IsTopCapsule() bool {
	return len(d.Structure) == 1 &&
		d.Structure[0].Kind == token.Name &&
		d.Structure[0].Text == TopCapsulePath
}

// IsSystem reports whether the instance is the runtime's system instance.
func (d *InstanceDecl) IsSystem() bool {
	return d.Path() == SystemPath && d.TypeName() == SystemTypeName
}

// IsTimer reports whether the instance is the runtime's timer service.
func (d *InstanceDecl) IsTimer() bool {
	return d.Path() == TimerPath && d.TypeName() == TimerTypeName
}

// DisplayName is the last named element of the path, used when a
// message line refers to the instance.
func (d *InstanceDecl) DisplayName() string {
	for i := len(d.Structure) - 1; i >= 0; i-- {
		if d.Structure[i].Kind == token.Name {
			return d.Structure[i].Text
		}
	}
	return d.Address.Text
}
