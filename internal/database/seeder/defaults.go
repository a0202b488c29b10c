package seeder

// Defaults returns the catalogue seeders, followed by the demo recruiter
// when demoPassword is set.
func Defaults(demoPassword string) []Seeder {
	out := []Seeder{
		CatalogSeeder{},
	}
	if demoPassword != "" {
		out = append(out, DemoSeeder{Password: demoPassword})
	}
	return out
}
