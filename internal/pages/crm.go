// File: internal/pages/crm.go
package pages

// Home is the landing page shown after login.
type Home struct {
	OrganizationsLink Locator
	ProfilePicture    Locator
	SignOutLink       Locator
}

// NewHome returns the home page object.
func NewHome() Home {
	return Home{
		OrganizationsLink: LinkText("Organizations"),
		ProfilePicture:    CSS(`img[src='themes/softed/images/user.PNG']`),
		SignOutLink:       LinkText("Sign Out"),
	}
}

// OrganizationDetail is the detail view shown after creating or opening an
// organization record.
type OrganizationDetail struct {
	OrganizationName Locator
}

// NewOrganizationDetail returns the organization detail page object.
func NewOrganizationDetail() OrganizationDetail {
	return OrganizationDetail{
		OrganizationName: ID("dtlview_Organization Name"),
	}
}
