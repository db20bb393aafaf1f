package globals

import (
	"fmt"

	"github.com/evanw/esbuild/pkg/api"
)

// PluginName is also the namespace the stand-in modules live in.
const PluginName = "global-externals"

// Plugin replaces imports of the external module paths with modules that
// re-export the matching global variables.
func (e *Externals) Plugin() api.Plugin {
	if e.Empty() {
		return api.Plugin{
			Name: PluginName + "-stub",
			Setup: func(build api.PluginBuild) {
			},
		}
	}

	return api.Plugin{
		Name: PluginName,
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: e.Filter()},
				func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					// mapper lookups can miss, fail here and not in the load callback
					info, err := e.Module(args.Path)
					if err != nil {
						return api.OnResolveResult{}, err
					}
					return api.OnResolveResult{
						Path:       args.Path,
						Namespace:  PluginName,
						PluginData: info,
					}, nil
				})

			build.OnLoad(api.OnLoadOptions{Filter: `.*`, Namespace: PluginName},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					info, ok := args.PluginData.(NormalizedModuleInfo)
					if !ok {
						// resolved by someone else into our namespace
						var err error
						if info, err = e.Module(args.Path); err != nil {
							return api.OnLoadResult{}, err
						}
					}
					contents := Contents(info)
					return api.OnLoadResult{
						Contents: &contents,
						Loader:   api.LoaderJS,
					}, nil
				})
		},
	}
}

// Plugin is a shortcut for NewFromVars(vars, options).Plugin().
func Plugin(vars map[string]string, options Options) (api.Plugin, error) {
	externals, err := NewFromVars(vars, options)
	if err != nil {
		return api.Plugin{}, fmt.Errorf("%s: %w", PluginName, err)
	}
	return externals.Plugin(), nil
}

// PluginFor is a shortcut for New(table, options).Plugin().
func PluginFor(table map[string]ModuleInfo, options Options) (api.Plugin, error) {
	externals, err := New(table, options)
	if err != nil {
		return api.Plugin{}, fmt.Errorf("%s: %w", PluginName, err)
	}
	return externals.Plugin(), nil
}
