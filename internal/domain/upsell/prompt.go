package upsell

type Links struct {
	UpgradeURL string
	SalesURL   string
}

// Prompt is the upgrade overlay shown instead of an activation that the
// seat limit blocked. It only tracks its own visibility.
type Prompt struct {
	Title      string
	Body       string
	UpgradeURL string
	SalesURL   string

	open bool
}

func New(links Links) *Prompt {
	return &Prompt{
		Title:      "Upgrade to Pro",
		Body:       "Your org has activated the maximum number of free users. You'll need to upgrade to Pro to add new seats.",
		UpgradeURL: links.UpgradeURL,
		SalesURL:   links.SalesURL,
	}
}

func (p *Prompt) Open()  { p.open = true }
func (p *Prompt) Close() { p.open = false }

func (p *Prompt) IsOpen() bool { return p.open }
