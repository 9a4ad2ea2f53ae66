package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board platform.
type Platform string

// Known job board platforms
const (
	PlatformGreenhouse      Platform = "greenhouse"
	PlatformLever           Platform = "lever"
	PlatformWorkday         Platform = "workday"
	PlatformAshby           Platform = "ashby"
	PlatformSmartRecruiters Platform = "smartrecruiters"
	PlatformUnknown         Platform = "unknown"
)

type platformRule struct {
	platform Platform
	hosts    []string
	content  []string
	noise    []string
}

// platformRules is checked in order; the first host suffix match wins
var platformRules = []platformRule{
	{
		platform: PlatformGreenhouse,
		hosts:    []string{"greenhouse.io"},
		content:  []string{".job__description.body", ".job__description", ".job-description__content", "#content", ".job-post-container"},
		noise:    []string{".application--wrapper", ".voluntary-self-id", "#usa_self_id_section", ".post-apply"},
	},
	{
		platform: PlatformLever,
		hosts:    []string{"lever.co"},
		content:  []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"},
		noise:    []string{".apply-section", ".lever-application-form", ".posting-apply"},
	},
	{
		platform: PlatformWorkday,
		hosts:    []string{"workday.com", "myworkdayjobs.com"},
		content:  []string{"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']", ".job-description"},
		noise:    []string{"[data-automation-id='applyButton']", ".application-section"},
	},
	{
		platform: PlatformAshby,
		hosts:    []string{"ashbyhq.com"},
		content:  []string{"[class*='_descriptionText']", "[class*='_description']", "main"},
		noise:    []string{"[class*='_applicationForm']"},
	},
	{
		platform: PlatformSmartRecruiters,
		hosts:    []string{"smartrecruiters.com"},
		content:  []string{".job-sections", "[itemprop='description']", "main"},
		noise:    []string{".job-apply", ".social-share"},
	},
}

// commonPlatformNoise applies to every platform
var commonPlatformNoise = []string{
	"form",
	"#application-form",
	".application-form",
	".apply-button-container",
	"[data-testid='application-form']",
	".eeo-statement",
	".eeo-section",
	".legal-disclosure",
	".social-share",
	".share-buttons",
	".cookie-consent",
	".gdpr-notice",
}

// DetectPlatform identifies the job board platform from a URL.
func DetectPlatform(urlStr string) Platform {
	if rule, ok := ruleFor(urlStr); ok {
		return rule.platform
	}
	return PlatformUnknown
}

// PlatformContentSelectors returns content selectors for a platform.
func PlatformContentSelectors(platform Platform) []string {
	for _, r := range platformRules {
		if r.platform == platform {
			return append([]string(nil), r.content...)
		}
	}
	return JobPostingSelectors()
}

// PlatformNoiseSelectors returns noise selectors for a platform, common ones first.
func PlatformNoiseSelectors(platform Platform) []string {
	out := append([]string(nil), commonPlatformNoise...)
	for _, r := range platformRules {
		if r.platform == platform {
			return append(out, r.noise...)
		}
	}
	return out
}

func ruleFor(urlStr string) (platformRule, bool) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return platformRule{}, false
	}
	host := strings.ToLower(parsed.Hostname())
	for _, r := range platformRules {
		for _, h := range r.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return r, true
			}
		}
	}
	return platformRule{}, false
}
