package features

import (
	"strings"

	"github.com/alnah/go-htmlmin/feature"
	"github.com/alnah/go-htmlmin/markup"
)

var htmlBooleanAttributes = toSet(
	"allowfullscreen", "allowpaymentrequest", "allowtransparency", "async",
	"autofocus", "autoplay", "checked", "compact", "controls", "declare",
	"default", "defaultchecked", "defaultmuted", "defaultselected", "defer",
	"disabled", "enabled", "formnovalidate", "hidden", "indeterminate", "inert",
	"ismap", "itemscope", "loop", "multiple", "muted", "nohref", "nomodule",
	"noresize", "noshade", "novalidate", "nowrap", "open", "pauseonexit",
	"playsinline", "readonly", "required", "reversed", "scoped", "seamless",
	"selected", "sortable", "truespeed", "typemustmatch", "visible",
)

var amphtmlBooleanAttributes = toSet(
	"⚡", "amp", "⚡4ads", "amp4ads", "⚡4email", "amp4email",
	"amp-custom", "amp-boilerplate", "amp4ads-boilerplate", "amp4email-boilerplate",
	"allow-blocked-ranges", "amp-access-hide", "amp-access-template",
	"amp-keyframes", "animate", "arrows", "data-block-on-consent",
	"data-enable-refresh", "data-multi-size", "date-template",
	"disable-double-tap", "disable-session-states", "disableremoteplayback",
	"dots", "expand-single-section", "expanded", "fallback", "first",
	"fullscreen", "inline", "lightbox", "noaudio", "noautoplay", "noloading",
	"once", "open-after-clear", "open-after-select", "open-button",
	"placeholder", "preload", "reset-on-refresh", "reset-on-resize",
	"resizable", "rotate-to-fullscreen", "second", "standalone", "stereo",
	"submit-error", "submit-success", "submitting", "subscriptions-actions",
	"subscriptions-dialog", "subscriptions-display", "subscriptions-section",
	"visible-when-invalid",
)

// CollapseBooleanAttributes writes boolean attributes without a value.
// With {amphtml: true}, empty AMP attributes are collapsed as well.
// crossorigin="anonymous" and an empty contenteditable are collapsed to
// their equivalent bare form.
func CollapseBooleanAttributes() *feature.Module {
	return &feature.Module{
		OnAttrs: func(_ *feature.Options, featureOpts any) feature.AttrsHandler {
			amphtml := feature.Bool(feature.Map(featureOpts), "amphtml", false)
			return func(attrs markup.Attrs, node *markup.Node) markup.Attrs {
				if node == nil || node.Tag == "" {
					return attrs
				}
				for i := range attrs {
					a := &attrs[i]
					if a.Bool {
						continue
					}
					switch {
					case a.Key == "visible" && strings.HasPrefix(strings.ToLower(node.Tag), "a-"):
						// A-Frame entities use visible="false".
					case htmlBooleanAttributes[a.Key]:
						a.Bool, a.Value = true, ""
					case amphtml && amphtmlBooleanAttributes[a.Key] && a.Value == "":
						a.Bool = true
					case a.Key == "crossorigin" && (a.Value == "" || strings.EqualFold(a.Value, "anonymous")):
						a.Bool, a.Value = true, ""
					case a.Key == "contenteditable" && a.Value == "":
						a.Bool = true
					}
				}
				return attrs
			}
		},
	}
}

func toSet(items ...string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
