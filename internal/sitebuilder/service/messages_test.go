package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/domain"
)

func TestMessages_EscapeUntrustedText(t *testing.T) {
	msg := msgChangeRequest(`change <img src=x onerror="y()">`)
	assert.Contains(t, msg, `You mentioned: "change &lt;img src=x onerror=&#34;y()&#34;&gt;"`)
	assert.NotContains(t, msg, "<img")

	msg = msgIndustryRecognized(msgDefaultIndustryRecognition("A&B Dental", "dental"), "A&B Dental", []string{"<Checkups>"})
	assert.Contains(t, msg, "**A&amp;B Dental** is in the **Dental** industry.")
	assert.NotContains(t, msg, "&amp;amp;")
	assert.Contains(t, msg, `value="&lt;Checkups&gt;"`)

	c := &domain.WebsiteContent{
		HeroHeadline: "<script>alert(1)</script>",
		AboutContent: "Fish & Chips",
		Services:     map[string]string{"Frying": "Hot <oil>"},
	}
	msg = msgContentPreview("Fry's", c, []domain.Service{{Name: "Frying"}})
	assert.Contains(t, msg, "*&lt;script&gt;alert(1)&lt;/script&gt;*")
	assert.Contains(t, msg, "• **Frying:** Hot &lt;oil&gt;")
	assert.Contains(t, msg, "Fish &amp; Chips")
	assert.Contains(t, msg, "**Fry&#39;s**")
}
