package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/cdp"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"

	"github.com/use-agent/groundtruth/config"
	"github.com/use-agent/groundtruth/models"
)

// NewRodLauncher returns a Launcher that starts a local Chromium through Rod
// and opens one maximized, stealth-patched window.
func NewRodLauncher(cfg config.BrowserConfig) Launcher {
	return func(ctx context.Context) (Browser, error) {
		return launchRod(ctx, cfg)
	}
}

func launchRod(ctx context.Context, cfg config.BrowserConfig) (*rodBrowser, error) {
	// The process outlives the request that happened to launch it.
	l := launcher.New().
		Context(context.WithoutCancel(ctx)).
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox)

	if cfg.BrowserBin != "" {
		l = l.Bin(cfg.BrowserBin)
	}
	if cfg.Proxy != "" {
		l = l.Proxy(cfg.Proxy)
	}

	// ── Stealth flags ────────────────────────────────────────────────
	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-features"), "AudioServiceOutOfProcess,TranslateUI")
	l.Set(flags.Flag("disable-popup-blocking"))
	l.Set(flags.Flag("disable-renderer-backgrounding"))
	l.Set(flags.Flag("disable-background-timer-throttling"))
	l.Set(flags.Flag("disable-backgrounding-occluded-windows"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("no-first-run"))

	// ── Window geometry ─────────────────────────────────────────────
	// Headless Chromium ignores start-maximized, so size it explicitly.
	l.Set(flags.Flag("start-maximized"))
	if cfg.WindowWidth > 0 && cfg.WindowHeight > 0 {
		l.Set(flags.Flag("window-size"), strconv.Itoa(cfg.WindowWidth)+","+strconv.Itoa(cfg.WindowHeight))
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewError(models.KindBrowserCrash, "failed to launch browser", err)
	}
	slog.Info("browser launched", "controlURL", controlURL)

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, models.NewError(models.KindBrowserCrash, "failed to connect to browser", err)
	}

	page, err := openPage(browser, cfg)
	if err != nil {
		_ = browser.Close()
		l.Cleanup()
		return nil, models.NewError(models.KindBrowserCrash, "failed to open browser window", err)
	}

	rb := &rodBrowser{launcher: l, browser: browser, page: page}
	rb.router = setupHijack(page, cfg.BlockedResourceTypes)
	return rb, nil
}

func openPage(browser *rod.Browser, cfg config.BrowserConfig) (*rod.Page, error) {
	var (
		page *rod.Page
		err  error
	)
	if cfg.Stealth {
		page, err = stealth.Page(browser)
	} else {
		page, err = browser.Page(proto.TargetCreateTarget{})
	}
	if err != nil {
		return nil, err
	}

	if err := page.SetWindow(&proto.BrowserBounds{
		WindowState: proto.BrowserWindowStateMaximized,
	}); err != nil {
		slog.Debug("browser: maximize window failed", "error", err)
	}

	_ = proto.NetworkSetExtraHTTPHeaders{
		Headers: proto.NetworkHeaders{"Accept-Language": gson.New("en-US,en;q=0.9")},
	}.Call(page)

	return page, nil
}

// rodBrowser is the Rod implementation of Browser.
type rodBrowser struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	router   *rod.HijackRouter
}

func (b *rodBrowser) Navigate(ctx context.Context, url string) error {
	p := b.page.Context(ctx)
	if err := p.Navigate(url); err != nil {
		return err
	}
	return p.WaitLoad()
}

func (b *rodBrowser) HTML(ctx context.Context) (string, error) {
	return b.page.Context(ctx).HTML()
}

func (b *rodBrowser) Eval(ctx context.Context, js string) error {
	_, err := b.page.Context(ctx).Eval(js)
	return err
}

func (b *rodBrowser) Elements(ctx context.Context, loc models.Locator) ([]Element, error) {
	p := b.page.Context(ctx)

	var (
		els rod.Elements
		err error
	)
	if xpath, ok := toXPath(loc); ok {
		els, err = p.ElementsX(xpath)
	} else {
		els, err = p.Elements(toCSS(loc))
	}
	if err != nil {
		return nil, classifyInteraction(err, "element lookup for "+loc.String()+" failed")
	}

	out := make([]Element, len(els))
	for i, el := range els {
		out[i] = &rodElement{el: el}
	}
	return out, nil
}

// Close tears down the interceptor, the browser process and its profile dir.
func (b *rodBrowser) Close() error {
	if b.router != nil {
		_ = b.router.Stop()
	}
	err := b.browser.Close()
	b.launcher.Cleanup()
	return err
}

type rodElement struct {
	el *rod.Element
}

func (e *rodElement) ScrollIntoView(ctx context.Context) error {
	if err := e.el.Context(ctx).ScrollIntoView(); err != nil {
		return classifyInteraction(err, "scroll into view failed")
	}
	return nil
}

// Click checks interactability once before clicking. Rod's Click waits for
// the element to become interactable and never reports a covering overlay.
func (e *rodElement) Click(ctx context.Context) error {
	el := e.el.Context(ctx)
	if _, err := el.Interactable(); err != nil {
		return classifyInteraction(err, "element not clickable")
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return classifyInteraction(err, "click failed")
	}
	return nil
}

// toXPath reports whether loc must be resolved as XPath, and the expression.
func toXPath(loc models.Locator) (string, bool) {
	switch loc.By {
	case models.LocateXPath:
		return loc.Value, true
	case models.LocateLinkText:
		return "//a[normalize-space(.)=" + xpathLiteral(loc.Value) + "]", true
	}
	return "", false
}

// toCSS converts the remaining strategies to a CSS selector.
func toCSS(loc models.Locator) string {
	switch loc.By {
	case models.LocateID:
		return fmt.Sprintf("[id=%q]", loc.Value)
	case models.LocateClass:
		return "." + strings.Join(strings.Fields(loc.Value), ".")
	case models.LocateName:
		return fmt.Sprintf("[name=%q]", loc.Value)
	default:
		return loc.Value
	}
}

// xpathLiteral quotes s as an XPath 1.0 string literal. XPath has no escape
// sequences, so values holding both quote kinds go through concat().
func xpathLiteral(s string) string {
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	parts := strings.Split(s, `"`)
	var sb strings.Builder
	sb.WriteString("concat(")
	for i, part := range parts {
		if i > 0 {
			sb.WriteString(`, '"', `)
		}
		sb.WriteString(`"` + part + `"`)
	}
	sb.WriteString(")")
	return sb.String()
}

// classifyInteraction maps Rod element errors to interaction kinds.
func classifyInteraction(err error, msg string) error {
	var (
		notInteractable *rod.NotInteractableError
		invisible       *rod.InvisibleShapeError
		noPointer       *rod.NoPointerEventsError
		covered         *rod.CoveredError
		notFound        *rod.ObjectNotFoundError
		cdpErr          *cdp.Error
	)
	switch {
	case errors.As(err, &covered):
		return models.NewError(models.KindClickIntercepted, msg, err)
	case errors.As(err, &notInteractable), errors.As(err, &invisible), errors.As(err, &noPointer):
		return models.NewError(models.KindNotInteractable, msg, err)
	case errors.As(err, &notFound):
		return models.NewError(models.KindStaleElement, msg, err)
	case errors.As(err, &cdpErr) && isStaleNode(cdpErr):
		return models.NewError(models.KindStaleElement, msg, err)
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewError(models.KindInteractionTimeout, msg, err)
	default:
		return models.NewError(models.KindNavigation, msg, err)
	}
}

// isStaleNode reports whether a protocol error refers to a detached node.
func isStaleNode(e *cdp.Error) bool {
	m := strings.ToLower(e.Message)
	return strings.Contains(m, "node") && (strings.Contains(m, "not find") || strings.Contains(m, "no node") || strings.Contains(m, "detached"))
}
