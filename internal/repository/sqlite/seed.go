package sqlite

import (
	"context"
	"fmt"

	"cardvault/internal/domain"
)

// Seed inserts a set of realistic sample contacts. Intended for fresh
// databases; callers should check IsEmpty first.
func (r *Repository) Seed(ctx context.Context) error {
	seeds := []domain.CardInput{
		{
			Name: "Tan Wei Ming", Title: "Chief Executive Officer",
			Company: "DBS Group Holdings", Website: "https://www.dbs.com",
			Notes: "Met at Singapore Fintech Festival 2025",
			Phones: []domain.PhoneInput{
				{Label: "mobile", Number: "+65 9123 4567"},
				{Label: "work", Number: "+65 6878 8888"},
			},
			Emails: []domain.EmailInput{
				{Label: "work", Address: "weiming.tan@dbs.com"},
				{Label: "personal", Address: "wm.tan@gmail.com"},
			},
			Addresses: []domain.AddressInput{
				{Label: "office", Street: "12 Marina Boulevard, DBS Asia Hub 2", City: "Singapore", Country: "Singapore", Postal: "018982"},
			},
			Tags: []string{"fintech", "client", "investor"},
		},
		{
			Name: "Priya Krishnamurthy", Title: "VP Engineering",
			Company: "Grab Holdings", Website: "https://www.grab.com",
			Notes: "Collaborated on payments infrastructure",
			Phones: []domain.PhoneInput{
				{Label: "mobile", Number: "+65 8234 5678"},
			},
			Emails: []domain.EmailInput{
				{Label: "work", Address: "priya.k@grab.com"},
			},
			Addresses: []domain.AddressInput{
				{Label: "office", Street: "3 Media Close, One-North", City: "Singapore", Country: "Singapore", Postal: "138498"},
			},
			Tags: []string{"fintech", "partner", "colleague"},
		},
		{
			Name: "Ahmad Fauzi bin Rashid", Title: "Director of Investments",
			Company: "Temasek Holdings", Website: "https://www.temasek.com.sg",
			Notes: "Investor relations contact",
			Phones: []domain.PhoneInput{
				{Label: "mobile", Number: "+65 9345 6789"},
				{Label: "work", Number: "+65 6308 2222"},
			},
			Emails: []domain.EmailInput{
				{Label: "work", Address: "ahmad.fauzi@temasek.com.sg"},
			},
			Addresses: []domain.AddressInput{
				{Label: "office", Street: "60B Orchard Road, Tower 2", City: "Singapore", Country: "Singapore", Postal: "238891"},
			},
			Tags: []string{"government", "investor"},
		},
		{
			Name: "Li Mei Chen", Title: "Chief Technology Officer",
			Company: "Sea Limited", Website: "https://www.sea.com",
			Notes: "Introduced by James Wong",
			Phones: []domain.PhoneInput{
				{Label: "mobile", Number: "+65 8456 7890"},
			},
			Emails: []domain.EmailInput{
				{Label: "work", Address: "meichen@sea.com"},
				{Label: "personal", Address: "limeichen@hotmail.com"},
			},
			Tags: []string{"fintech", "colleague"},
		},
		{
			Name: "Rajesh Kumar s/o Subramaniam", Title: "Principal Consultant",
			Company: "McKinsey & Company", Website: "https://www.mckinsey.com",
			Notes: "Strategy consulting, KL office lead",
			Phones: []domain.PhoneInput{
				{Label: "mobile", Number: "+60 12-345 6789"},
				{Label: "work", Number: "+60 3-2302 1000"},
			},
			Emails: []domain.EmailInput{
				{Label: "work", Address: "rajesh.kumar@mckinsey.com"},
			},
			Addresses: []domain.AddressInput{
				{Label: "office", Street: "Level 34, Menara Citibank, 165 Jalan Ampang", City: "Kuala Lumpur", Country: "Malaysia", Postal: "50450"},
			},
			Tags: []string{"partner", "vendor"},
		},
		{
			Name: "Siti Nurbaya Haji Mohamad", Title: "Senior Director",
			Company: "GovTech Singapore", Website: "https://www.tech.gov.sg",
			Notes: "Digital government partnerships",
			Phones: []domain.PhoneInput{
				{Label: "mobile", Number: "+65 9567 8901"},
			},
			Emails: []domain.EmailInput{
				{Label: "work", Address: "siti_nurbaya@tech.gov.sg"},
			},
			Tags: []string{"government", "client"},
		},
		{
			Name: "Kevin Tan Kiat Seng", Title: "Founder & CEO",
			Company: "PaySG Technologies", Website: "https://www.paysg.io",
			Notes: "Seed stage, looking for Series A",
			Phones: []domain.PhoneInput{
				{Label: "mobile", Number: "+65 9678 9012"},
			},
			Emails: []domain.EmailInput{
				{Label: "work", Address: "kevin@paysg.io"},
				{Label: "personal", Address: "kevintks@gmail.com"},
			},
			Addresses: []domain.AddressInput{
				{Label: "office", Street: "71 Ayer Rajah Crescent, JTC LaunchPad", City: "Singapore", Country: "Singapore", Postal: "139952"},
			},
			Tags: []string{"fintech", "investor", "client"},
		},
		{
			Name: "Siti Rahimah Binti Abdullah", Title: "Regional Director",
			Company: "Prudential plc", Website: "https://www.prudential.co.id",
			Notes: "Insurance & wealth management, Indonesia",
			Phones: []domain.PhoneInput{
				{Label: "mobile", Number: "+62 812-3456-7890"},
				{Label: "work", Number: "+62 21-5799-8400"},
			},
			Emails: []domain.EmailInput{
				{Label: "work", Address: "siti.rahimah@prudential.co.id"},
			},
			Addresses: []domain.AddressInput{
				{Label: "office", Street: "Prudential Tower, 7 Jalan Jenderal Sudirman", City: "Jakarta", Country: "Indonesia", Postal: "10220"},
			},
			Tags: []string{"fintech", "partner"},
		},
		{
			Name: "James Wong Wei Jian", Title: "Head of Engineering",
			Company: "Shopee / Sea Group", Website: "https://shopee.sg",
			Notes: "Ex-PayPal, strong mobile payments background",
			Phones: []domain.PhoneInput{
				{Label: "mobile", Number: "+65 9789 0123"},
			},
			Emails: []domain.EmailInput{
				{Label: "work", Address: "jameswong@shopee.com"},
				{Label: "personal", Address: "james.wongwj@gmail.com"},
			},
			Tags: []string{"colleague"},
		},
		{
			Name: "Anika Sharma", Title: "Senior Product Manager",
			Company: "Agoda Company", Website: "https://www.agoda.com",
			Notes: "Travel tech; met at ProductCon Bangkok",
			Phones: []domain.PhoneInput{
				{Label: "mobile", Number: "+66 89-123-4567"},
			},
			Emails: []domain.EmailInput{
				{Label: "work", Address: "anika.sharma@agoda.com"},
			},
			Addresses: []domain.AddressInput{
				{Label: "office", Street: "30th Floor, The Offices at CentralWorld, Ratchadamri Road", City: "Bangkok", Country: "Thailand", Postal: "10330"},
			},
			Tags: []string{"colleague", "vendor"},
		},
	}

	for _, input := range seeds {
		if _, err := r.CreateCard(ctx, input); err != nil {
			return fmt.Errorf("seed %q: %w", input.Name, err)
		}
	}
	return nil
}
