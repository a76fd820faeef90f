package models

// Value is a parsed JSON value. It is one of:
//
//	nil          JSON null
//	bool         JSON true/false
//	json.Number  JSON number, holding the source literal verbatim
//	string       JSON string
//	Array        JSON array
//	Object       JSON object
//
// Numbers are kept as json.Number so the exact literal written in the
// input survives conversion; parsing them into float64 would lose
// precision for large integers and long fractions.
type Value interface{}

// Array is a JSON array: an ordered sequence of values.
type Array []Value

// Object is a JSON object as an ordered sequence of members. Unlike a
// map it preserves the order keys appeared in the input and can hold
// the same key more than once, both of which matter when the object is
// turned into a list of KDL nodes.
type Object []Member

// Member is a single key/value pair of an Object.
type Member struct {
	Key   string
	Value Value
}

// Get returns the value of the first member with the given key.
func (o Object) Get(key string) (Value, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Has reports whether the object contains at least one member with the
// given key.
func (o Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}
