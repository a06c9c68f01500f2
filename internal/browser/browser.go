// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package browser manages the Chrome session shared by the collection and
// extraction stages: launch with anti-automation settings, one page at a
// time, guaranteed teardown. Stages drive pages through the Page interface
// so their tests can substitute fakes for a live browser.
package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/pdiddy/tagharvest/pkg/types"
)

// stealthScript hides the automation flag checked by bot-detection scripts.
// Installed before navigation on every page.
const stealthScript = `Object.defineProperty(navigator, 'webdriver', {get: () => undefined})`

// Page is one open browser tab.
type Page interface {
	// Title returns the current document title.
	Title() (string, error)

	// URL returns the page URL after any redirects.
	URL() (string, error)

	// HTML returns the rendered document HTML.
	HTML() (string, error)

	// ScrollStep scrolls down by most of one viewport height.
	ScrollStep() error

	// AnchorHrefs returns the href of every anchor currently in the DOM.
	AnchorHrefs() ([]string, error)

	// VisibleDates returns the datetime attribute of every time element
	// currently in the DOM, in document order.
	VisibleDates() ([]string, error)

	// Close releases the tab.
	Close() error
}

// Opener opens pages. *Session implements it; stage tests provide fakes.
type Opener interface {
	OpenPage(ctx context.Context, url string) (Page, error)
}

// Session is a running Chrome instance. Callers must Close it on every
// exit path; pages opened from it are closed independently.
type Session struct {
	browser *rod.Browser
	launch  *launcher.Launcher
	cfg     types.BrowserConfig
}

// Launch starts Chrome per cfg and connects to it. An explicit binary in
// cfg wins; otherwise a system install is used when found, falling back to
// the launcher's managed download.
func Launch(cfg types.BrowserConfig) (*Session, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(true).
		Set("disable-blink-features", "AutomationControlled").
		Set("disable-infobars").
		Set("disable-dev-shm-usage").
		Set("disable-browser-side-navigation").
		Set("disable-gpu").
		Set("lang", "en-US")

	if cfg.Bin != "" {
		l = l.Bin(cfg.Bin)
	} else if path, found := launcher.LookPath(); found {
		l = l.Bin(path)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &Session{browser: b, launch: l, cfg: cfg}, nil
}

// Close shuts the browser down and removes the launcher's temporary state.
func (s *Session) Close() error {
	err := s.browser.Close()
	s.launch.Cleanup()
	if err != nil {
		return fmt.Errorf("closing browser: %w", err)
	}
	return nil
}

// OpenPage opens url in a fresh tab with the session's user agent,
// viewport, and automation mask applied, then waits for the load event.
// The navigate timeout covers navigation and load wait only; the returned
// page carries ctx for everything after.
func (s *Session) OpenPage(ctx context.Context, url string) (Page, error) {
	p, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("opening tab: %w", err)
	}
	p = p.Context(ctx)

	if _, err := p.EvalOnNewDocument(stealthScript); err != nil {
		p.Close()
		return nil, fmt.Errorf("installing automation mask: %w", err)
	}
	if s.cfg.UserAgent != "" {
		ua := proto.NetworkSetUserAgentOverride{UserAgent: s.cfg.UserAgent}
		if err := p.SetUserAgent(&ua); err != nil {
			p.Close()
			return nil, fmt.Errorf("setting user agent: %w", err)
		}
	}
	if s.cfg.ViewportWidth > 0 && s.cfg.ViewportHeight > 0 {
		vp := proto.EmulationSetDeviceMetricsOverride{
			Width:             s.cfg.ViewportWidth,
			Height:            s.cfg.ViewportHeight,
			DeviceScaleFactor: 1,
		}
		if err := p.SetViewport(&vp); err != nil {
			p.Close()
			return nil, fmt.Errorf("setting viewport: %w", err)
		}
	}

	nav := p
	if s.cfg.NavigateTimeout > 0 {
		nav = p.Timeout(s.cfg.NavigateTimeout)
	}
	if err := nav.Navigate(url); err != nil {
		p.Close()
		return nil, fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := nav.WaitLoad(); err != nil {
		p.Close()
		return nil, fmt.Errorf("waiting for %s to load: %w", url, err)
	}

	return &page{p: p}, nil
}

// WaitReady gives a freshly opened page time to finish client-side
// rendering, then waits out an anti-bot interstitial if one is on screen.
func WaitReady(p Page, settle, interstitialWait time.Duration) error {
	time.Sleep(settle)
	title, err := p.Title()
	if err != nil {
		return fmt.Errorf("reading page title: %w", err)
	}
	if strings.Contains(title, "Just a moment") || strings.Contains(title, "Cloudflare") {
		time.Sleep(interstitialWait)
	}
	return nil
}

const (
	scrollScript = `() => { window.scrollBy({top: window.innerHeight * 0.8, behavior: 'smooth'}) }`
	anchorScript = `() => Array.from(document.querySelectorAll('a')).map(a => a.href)`
	datesScript  = `() => Array.from(document.querySelectorAll('time[datetime]')).map(t => t.getAttribute('datetime'))`
)

// page adapts a rod page to the Page interface.
type page struct {
	p *rod.Page
}

func (pg *page) Title() (string, error) {
	info, err := pg.p.Info()
	if err != nil {
		return "", fmt.Errorf("reading page info: %w", err)
	}
	return info.Title, nil
}

func (pg *page) URL() (string, error) {
	info, err := pg.p.Info()
	if err != nil {
		return "", fmt.Errorf("reading page info: %w", err)
	}
	return info.URL, nil
}

func (pg *page) HTML() (string, error) {
	html, err := pg.p.HTML()
	if err != nil {
		return "", fmt.Errorf("reading page HTML: %w", err)
	}
	return html, nil
}

func (pg *page) ScrollStep() error {
	if _, err := pg.p.Eval(scrollScript); err != nil {
		return fmt.Errorf("scrolling: %w", err)
	}
	return nil
}

func (pg *page) AnchorHrefs() ([]string, error) {
	obj, err := pg.p.Eval(anchorScript)
	if err != nil {
		return nil, fmt.Errorf("collecting anchors: %w", err)
	}
	var hrefs []string
	for _, v := range obj.Value.Arr() {
		if href := v.Str(); href != "" {
			hrefs = append(hrefs, href)
		}
	}
	return hrefs, nil
}

func (pg *page) VisibleDates() ([]string, error) {
	obj, err := pg.p.Eval(datesScript)
	if err != nil {
		return nil, fmt.Errorf("collecting dates: %w", err)
	}
	var dates []string
	for _, v := range obj.Value.Arr() {
		if d := v.Str(); d != "" {
			dates = append(dates, d)
		}
	}
	return dates, nil
}

func (pg *page) Close() error {
	return pg.p.Close()
}
