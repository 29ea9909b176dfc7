package scraper

import (
	"context"
	"log/slog"
)

// removeOverlaysJS strips fixed and sticky overlays such as cookie banners
// and consent modals, and restores scrolling on the document.
const removeOverlaysJS = `() => {
	for (const el of document.querySelectorAll('*')) {
		const style = window.getComputedStyle(el);
		if (style.position !== 'fixed' && style.position !== 'sticky') continue;
		const z = parseInt(style.zIndex, 10);
		if (z >= 900 || style.zIndex === 'auto') el.remove();
	}
	const selectors = [
		'[class*="cookie"]', '[id*="cookie"]',
		'[class*="consent"]', '[id*="consent"]',
		'[class*="gdpr"]', '[id*="gdpr"]',
		'[class*="popup"]', '[id*="popup"]',
	];
	for (const sel of selectors) {
		document.querySelectorAll(sel).forEach(el => {
			const pos = window.getComputedStyle(el).position;
			if (pos === 'fixed' || pos === 'sticky' || pos === 'absolute') el.remove();
		});
	}
	document.documentElement.style.overflow = '';
	if (document.body) document.body.style.overflow = '';
}`

// RemoveOverlays is a Hook that deletes overlays which would otherwise
// intercept clicks on the page underneath.
func RemoveOverlays(ctx context.Context, b Browser) {
	if err := b.Eval(ctx, removeOverlaysJS); err != nil {
		slog.Debug("hook: remove overlays failed", "error", err)
	}
}

// EvalHook returns a Hook that runs js after every load, logging failures.
func EvalHook(name, js string) Hook {
	return func(ctx context.Context, b Browser) {
		if err := b.Eval(ctx, js); err != nil {
			slog.Debug("hook: eval failed", "hook", name, "error", err)
		}
	}
}
