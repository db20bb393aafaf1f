package lib

import (
	"fmt"

	"github.com/evanw/esbuild/pkg/api"
)

func ParseFormat(text string) (api.Format, error) {
	switch text {
	case "", "default":
		return api.FormatDefault, nil
	case "esm", "ESM":
		return api.FormatESModule, nil
	case "iife", "IIFE":
		return api.FormatIIFE, nil
	case "cjs", "CJS", "commonjs":
		return api.FormatCommonJS, nil
	default:
		return api.FormatDefault, fmt.Errorf("invalid format: %q, valid values are \"esm\", \"iife\" or \"cjs\"", text)
	}
}

func ParsePlatform(text string) (api.Platform, error) {
	switch text {
	case "", "browser":
		return api.PlatformBrowser, nil
	case "node":
		return api.PlatformNode, nil
	case "neutral":
		return api.PlatformNeutral, nil
	default:
		return api.PlatformBrowser, fmt.Errorf("invalid platform: %q, valid values are \"browser\", \"node\" or \"neutral\"", text)
	}
}

func ParseSourceMap(text string) (api.SourceMap, error) {
	switch text {
	case "", "none":
		return api.SourceMapNone, nil
	case "inline":
		return api.SourceMapInline, nil
	case "linked":
		return api.SourceMapLinked, nil
	case "external":
		return api.SourceMapExternal, nil
	case "both":
		return api.SourceMapInlineAndExternal, nil
	default:
		return api.SourceMapNone, fmt.Errorf("invalid sourceMap: %q, valid values are \"none\", \"inline\", \"linked\", \"external\" or \"both\"", text)
	}
}

func ParseBrowserTarget(customBrowserTarget string) (api.Target, error) {
	switch customBrowserTarget {
	case "ES2015", "es2015", "Es2015":
		return api.ES2015, nil
	case "ES2016", "es2016", "Es2016":
		return api.ES2016, nil
	case "ES2017", "es2017", "Es2017":
		return api.ES2017, nil
	case "ES2018", "es2018", "Es2018":
		return api.ES2018, nil
	case "ES2019", "es2019", "Es2019":
		return api.ES2019, nil
	case "ES2020", "es2020", "Es2020":
		return api.ES2020, nil
	case "ES2021", "es2021", "Es2021":
		return api.ES2021, nil
	case "ES2022", "es2022", "Es2022":
		return api.ES2022, nil
	case "ES2023", "es2023", "Es2023":
		return api.ES2023, nil
	case "ES2024", "es2024", "Es2024":
		return api.ES2024, nil
	case "ESNEXT", "esnext", "ESNext", "ESnext":
		return api.ESNext, nil
	case "ES6", "es6", "Es6":
		return api.ES2015, nil
	case "default", "Default", "none", " ", "":
		return api.DefaultTarget, nil
	default:
		return api.DefaultTarget, fmt.Errorf("unsupported target: %q, valid targets are \"es6\", \"es2015\", \"es2016\", \"es2017\", \"es2018\", \"es2019\", \"es2020\", \"es2021\", \"es2022\", \"es2023\", \"es2024\", \"esnext\", \"default\"", customBrowserTarget)
	}
}

// FormatMessages renders esbuild errors or warnings the way esbuild prints them.
func FormatMessages(messages []api.Message, kind api.MessageKind, color bool) []string {
	return api.FormatMessages(messages, api.FormatMessagesOptions{
		Kind:          kind,
		Color:         color,
		TerminalWidth: 100,
	})
}
