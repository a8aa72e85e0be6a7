// File: internal/pages/locator_test.go
package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocatorQuery(t *testing.T) {
	cases := []struct {
		name string
		loc  Locator
		want string
	}{
		{"simple id", ID("search_button"), "#search_button"},
		{"id with space lowers to xpath", ID("dtlview_Organization Name"), "//*[@id='dtlview_Organization Name']"},
		{"css passes through", CSS("div.menu > a"), "div.menu > a"},
		{"xpath passes through", XPath("//table//tr[1]"), "//table//tr[1]"},
		{"name becomes attribute selector", Name("accountname"), `[name="accountname"]`},
		{"link text becomes anchor xpath", LinkText("Sign Out"), "//a[normalize-space(.)='Sign Out']"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.loc.Query())
		})
	}
}

func TestXPathLiteralQuoting(t *testing.T) {
	assert.Equal(t, "'plain'", xpathLiteral("plain"))
	assert.Equal(t, `"it's"`, xpathLiteral("it's"))
	assert.Equal(t, `'say "hi"'`, xpathLiteral(`say "hi"`))
	assert.Equal(t, `concat('it', "'", 's "x"')`, xpathLiteral(`it's "x"`))
}

func TestHomePageLocators(t *testing.T) {
	home := NewHome()
	assert.Equal(t, "//a[normalize-space(.)='Organizations']", home.OrganizationsLink.Query())
	assert.Equal(t, "//a[normalize-space(.)='Sign Out']", home.SignOutLink.Query())
	assert.Equal(t, `img[src='themes/softed/images/user.PNG']`, home.ProfilePicture.Query())
}

func TestOrganizationDetailLocators(t *testing.T) {
	detail := NewOrganizationDetail()
	assert.Equal(t, "//*[@id='dtlview_Organization Name']", detail.OrganizationName.Query())
}
