package rewrite

import (
	"fmt"
	"strconv"

	"github.com/domtools/dommerge/internal/catalog"
)

// ConvertImplicitNew rewrites an unnumbered "#new<kind>" line into
// "#select<kind> <assignedID>", preserving any trailing tokens on the
// line, and returns an audit comment to emit alongside it. ok is false
// if line isn't actually an unnumbered #new<kind> directive for kind
// (e.g. it already carries an explicit id, or doesn't match at all) —
// spell's #newspell is never passed here, since the spell-block
// processor handles that conversion itself at flush time.
func ConvertImplicitNew(line string, kind catalog.EntityKind, assignedID int) (audit string, rewritten string, ok bool) {
	re := catalog.NewPattern(kind)
	if re == nil {
		return "", line, false
	}
	loc := re.FindStringSubmatchIndex(line)
	if loc == nil || loc[2] != -1 {
		return "", line, false
	}
	rest := line[loc[1]:]
	rewritten = "#select" + string(kind) + " " + strconv.Itoa(assignedID) + rest
	audit = fmt.Sprintf("-- MOD MERGER: Converted unnumbered #new%s to #select%s %d", kind, kind, assignedID)
	return audit, rewritten, true
}
