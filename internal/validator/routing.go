package validator

// ValidRoutingNumber reports whether value is a nine-digit ABA routing
// number with a correct weighted checksum:
//
//	3*(d0+d3+d6) + 7*(d1+d4+d7) + 1*(d2+d5+d8) ≡ 0 (mod 10)
//
// Any input that is not exactly nine decimal digits is invalid. The check
// never proposes a corrected number; it only accepts or rejects.
func ValidRoutingNumber(value string) bool {
	if len(value) != 9 {
		return false
	}
	var d [9]int
	for i := 0; i < 9; i++ {
		c := value[i]
		if c < '0' || c > '9' {
			return false
		}
		d[i] = int(c - '0')
	}
	checksum := 3*(d[0]+d[3]+d[6]) + 7*(d[1]+d[4]+d[7]) + (d[2] + d[5] + d[8])
	return checksum%10 == 0
}
