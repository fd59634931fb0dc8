package host

// Numeric widening order of host primitive types. Boxed names share the
// rank of their primitive.
var numericRank = map[string]int{
	"byte": 1, "java.lang.Byte": 1,
	"short": 2, "java.lang.Short": 2,
	"char": 3, "java.lang.Character": 3,
	"int": 4, "java.lang.Integer": 4,
	"long": 5, "java.lang.Long": 5,
	"float": 6, "java.lang.Float": 6,
	"double": 7, "java.lang.Double": 7,
}

const floatingRank = 6

// Reference types a boxed numeric value is also an instance of.
var numericSupers = map[string]bool{
	"java.lang.Object":     true,
	"java.lang.Number":     true,
	"java.lang.Comparable": true,
}

// IsNumeric reports whether name is a primitive or boxed numeric type.
func IsNumeric(name string) bool {
	_, ok := numericRank[name]
	return ok
}

// IsFloating reports whether name is float or double (boxed or not).
func IsFloating(name string) bool {
	return numericRank[name] >= floatingRank
}

// NumericCompatible applies the script's widening rule: floating values
// are offered for any numeric target, integral values for targets at least
// as wide as themselves.
func NumericCompatible(from, to string) bool {
	fr, ok := numericRank[from]
	if !ok {
		return false
	}
	tr, ok := numericRank[to]
	if !ok {
		return false
	}
	if fr >= floatingRank {
		return true
	}
	return fr <= tr
}

// Assignable reports whether a value of type from can be passed where to is
// expected: equal names, numeric widening, or a superclass chain known to r.
// Numeric values also pass for Object, Number and Comparable.
func Assignable(r Reflector, from, to string) bool {
	if from == "" || to == "" {
		return false
	}
	if from == to {
		return true
	}
	if IsNumeric(from) && IsNumeric(to) {
		return NumericCompatible(from, to)
	}
	if IsNumeric(from) {
		return numericSupers[to]
	}
	if IsNumeric(to) {
		return false
	}
	if to == "java.lang.Object" {
		return true
	}
	if r == nil {
		return false
	}
	seen := map[string]bool{from: true}
	queue := []string{from}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		cls := LookupQuiet(r, name)
		if cls == nil {
			continue
		}
		for _, super := range cls.Supers {
			if super == to {
				return true
			}
			if !seen[super] {
				seen[super] = true
				queue = append(queue, super)
			}
		}
	}
	return false
}
