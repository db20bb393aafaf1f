package lib

import (
	"errors"
	"flag"
	"strings"
)

var flagsSet map[string]bool

func IsFlagPassed(name string) bool {
	if flagsSet == nil {
		flagsSet = make(map[string]bool)
		flag.Visit(func(f *flag.Flag) {
			flagsSet[f.Name] = true
		})
	}

	_, found := flagsSet[name]

	return found
}

type ArrayFlags []string

func (i *ArrayFlags) String() string {
	return strings.Join(*i, ",")
}
func (i *ArrayFlags) Set(value string) error {
	for v := range strings.SplitSeq(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			*i = append(*i, v)
		}
	}
	return nil
}

// splitPair splits "key:val" or "key=val". Scoped packages keep their '@',
// the separator is searched after it.
func splitPair(v string) (string, string, bool) {
	start := 0
	if strings.HasPrefix(v, "@") {
		start = 1
	}
	if idx := strings.IndexAny(v[start:], ":="); idx >= 0 {
		idx += start
		return v[:idx], v[idx+1:], true
	}
	return "", "", false
}

type MapFlags map[string]string

func (i *MapFlags) String() string {
	val := strings.Builder{}
	for a, p := range *i {
		val.WriteString(",")
		val.WriteString(a)
		val.WriteString(":")
		val.WriteString(p)
	}
	return strings.TrimPrefix(val.String(), ",")
}
func (i *MapFlags) Set(value string) error {
	for v := range strings.SplitSeq(value, ",") {
		key, val, ok := splitPair(v)
		if !ok {
			return errors.New("invalid seperator, use key:val,key1:val1,... ")
		}

		if *i == nil {
			*i = make(MapFlags)
		}

		(*i)[key] = val
	}

	return nil
}

// ExportsFlags maps a module path to its named exports, ie. react:useState|useEffect,vue:ref
type ExportsFlags map[string][]string

func (i *ExportsFlags) String() string {
	val := strings.Builder{}
	for a, names := range *i {
		val.WriteString(",")
		val.WriteString(a)
		val.WriteString(":")
		val.WriteString(strings.Join(names, "|"))
	}
	return strings.TrimPrefix(val.String(), ",")
}

func (i *ExportsFlags) Set(value string) error {
	for v := range strings.SplitSeq(value, ",") {
		key, val, ok := splitPair(v)
		if !ok {
			return errors.New("invalid seperator, use package:export|export2,package2:export,... ")
		}

		if *i == nil {
			*i = make(ExportsFlags)
		}

		for name := range strings.SplitSeq(val, "|") {
			if name = strings.TrimSpace(name); name != "" {
				(*i)[key] = append((*i)[key], name)
			}
		}
	}
	return nil
}
