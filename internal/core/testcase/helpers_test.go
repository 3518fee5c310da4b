package testcase

func mustRequest(category Category, module string, count int, url string) Request {
	req, err := Validate(RawRequest{
		TestCaseType: string(category),
		ModuleName:   module,
		NumTestCases: &count,
		URL:          url,
	})
	if err != nil {
		panic(err)
	}
	return req
}

func hasField(err *ValidationError, field string) bool {
	for _, f := range err.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}
