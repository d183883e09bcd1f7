package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/canteen-dev/restaurant-roster/backend/internal/domain"
	"github.com/mozillazg/go-pinyin"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
	"庆", "建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

func GenerateRandomSchedulableRole() domain.Role {
	return domain.SchedulableRoles[rand.Intn(len(domain.SchedulableRoles))]
}

var digits = "0123456789"

func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, pinyin := range pinyinArray {
		length := rand.Intn(len(pinyin)) + 1
		username += pinyin[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomEmployee(password string, emailDomainName string) (*domain.Employee, error) {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	employee := &domain.Employee{
		Username:         username,
		PasswordHash:     string(passwordHash),
		FullName:         fullName,
		Email:            username + "@" + emailDomainName,
		PrimaryRole:      GenerateRandomSchedulableRole(),
		MaxShiftsPerWeek: int32(rand.Intn(8) + 4),
	}

	// 一半左右的员工有副岗位
	if rand.Intn(2) == 0 {
		secondary := GenerateRandomSchedulableRole()
		if secondary != employee.PrimaryRole {
			employee.SecondaryRole = &secondary
		}
	}

	return employee, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

// GenerateRandomAvailability 为员工随机生成一周的空闲时间提交
func GenerateRandomAvailability(weekStart time.Time, employee *domain.Employee) []*domain.AvailabilityEntry {
	entries := make([]*domain.AvailabilityEntry, 0, 14)

	for day := int32(0); day < 7; day++ {
		for _, shiftType := range domain.ShiftTypes {
			entries = append(entries, &domain.AvailabilityEntry{
				EmployeeID:  employee.ID,
				WeekStart:   weekStart,
				DayOfWeek:   day,
				ShiftType:   shiftType,
				IsAvailable: rand.Intn(3) != 0, // 大约三分之二的时段有空
			})
		}
	}

	return entries
}

// GenerateRandomStaffingLimits 为每个 (天, 班段, 岗位) 生成人数约束
func GenerateRandomStaffingLimits() []*domain.StaffingLimit {
	limits := make([]*domain.StaffingLimit, 0, 7*len(domain.ShiftTypes)*len(domain.SchedulableRoles))

	for day := int32(0); day < 7; day++ {
		for _, shiftType := range domain.ShiftTypes {
			for _, role := range domain.SchedulableRoles {
				minStaff := int32(rand.Intn(3))
				limits = append(limits, &domain.StaffingLimit{
					DayOfWeek: day,
					ShiftType: shiftType,
					Role:      role,
					MinStaff:  minStaff,
					MaxStaff:  minStaff + int32(rand.Intn(3)) + 1,
				})
			}
		}
	}

	return limits
}
