package authz

// PrincipalCarrier is implemented by typed in-process arguments that can
// identify their caller directly.
type PrincipalCarrier interface {
	PrincipalID() string
}

// extractor attempts to pull a principal identifier out of the first call
// argument. Each shape the dispatch layer may send is one entry in the
// ordered strategy list below.
type extractor func(arg any) (string, bool)

// extractors are tried in order against the first argument; the first match
// wins. The map shapes mirror what the dispatch layer decodes from JSON.
var extractors = []extractor{
	fromCarrier,
	fromBareID,
	fromUserIDField,
	fromNestedData,
}

// PrincipalFromArgs derives the caller's principal identifier from a call's
// argument list. It accepts a typed carrier, a bare identifier, an object
// with a userId field, or an object with a nested data.userId field. Returns
// false when the list is empty or no shape matches. Pure, no side effects.
func PrincipalFromArgs(args []any) (string, bool) {
	if len(args) == 0 {
		return "", false
	}
	for _, ex := range extractors {
		if id, ok := ex(args[0]); ok {
			return id, true
		}
	}
	return "", false
}

func fromCarrier(arg any) (string, bool) {
	carrier, ok := arg.(PrincipalCarrier)
	if !ok {
		return "", false
	}
	id := carrier.PrincipalID()
	return id, id != ""
}

func fromBareID(arg any) (string, bool) {
	id, ok := arg.(string)
	return id, ok && id != ""
}

func fromUserIDField(arg any) (string, bool) {
	obj, ok := arg.(map[string]any)
	if !ok {
		return "", false
	}
	id, ok := obj["userId"].(string)
	return id, ok && id != ""
}

func fromNestedData(arg any) (string, bool) {
	obj, ok := arg.(map[string]any)
	if !ok {
		return "", false
	}
	data, ok := obj["data"].(map[string]any)
	if !ok {
		return "", false
	}
	return fromUserIDField(data)
}
