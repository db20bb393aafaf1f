package globals

import (
	"fmt"
	"slices"
	"strings"
)

// Contents renders the source text of the stand-in module for info.
func Contents(info NormalizedModuleInfo) string {
	switch info.Type {
	case ModuleCJS:
		return cjsContents(info.VarName)
	case ModuleESM:
		return esmContents(info.VarName, info.NamedExports, info.DefaultExport)
	default:
		panic(fmt.Sprintf("globals: module type %s is not normalized", info.Type))
	}
}

func cjsContents(varName string) string {
	return "module.exports = " + varName + ";"
}

func esmContents(varName string, namedExports []string, defaultExport bool) string {
	lines := make([]string, 0, len(namedExports)+1)
	if defaultExport {
		lines = append(lines, "export default "+varName+";")
	}

	root := rootIdentifier(varName)
	for _, name := range namedExports {
		local := name
		if local == root {
			local = localBinding(name, root, namedExports)
		}
		if local == name {
			lines = append(lines, fmt.Sprintf("const %s = %s.%s; export { %s };", name, varName, name, name))
		} else {
			lines = append(lines, fmt.Sprintf("const %s = %s.%s; export { %s as %s };", local, varName, name, local, name))
		}
	}

	return strings.Join(lines, "\n")
}

// localBinding picks a module scope name for an export that would otherwise
// shadow the global it reads from.
func localBinding(name, root string, taken []string) string {
	local := name
	for local == root || slices.Contains(taken, local) {
		local += "$"
	}
	return local
}
