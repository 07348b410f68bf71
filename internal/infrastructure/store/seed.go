package store

import (
	"time"

	"github.com/oksasatya/hocus-focus/internal/domain/entity"
)

const day = int64(24 * 60 * 60)

// Demo passwords are hashed at insert time.
func demoUsers(now int64) []entity.User {
	u := func(id, name, surname, email, password, role, picture, description string) entity.User {
		return entity.User{
			ID: id, Name: name, Surname: surname, Email: email, Password: password,
			Role: role, Picture: picture, Description: description, CreatedAt: now,
		}
	}
	return []entity.User{
		u("admin-1", "Liisa", "Nieminen", "admin@hocus-focus.fi", "admin123", "Administrator",
			"/images/users/admin-1.png", "Community administrator, mother of two, keeps Lahti moms moving."),
		u("user-1", "Sanna", "Virtanen", "sanna.virtanen@email.com", "password123", "Active Mom",
			"/images/users/user-1.png", "Toddler mom who likes yoga and outdoor meetups during nap time."),
		u("user-2", "Mia", "Korhonen", "mia.korhonen@email.com", "password123", "New Mom",
			"/images/users/user-2.png", "Twin girls at home, former yoga instructor, gentle exercise fan."),
		u("user-3", "Aino", "Mäkinen", "aino.makinen@email.com", "password123", "Outdoor Enthusiast",
			"/images/users/user-3.jpg", "Hiker looking for stroller-friendly walking groups."),
		u("user-4", "Katri", "Lehtonen", "katri.lehtonen@email.com", "password123", "First-Time Mom",
			"/images/users/user-4.png", "Getting back into shape with pilates and yoga."),
		u("user-5", "Laura", "Heinonen", "laura.heinonen@email.com", "password123", "Active Mom",
			"/images/users/user-5.png", "Pilates enthusiast who organizes playdates during workouts."),
		u("user-6", "Emilia", "Jokinen", "emilia.jokinen@email.com", "password123", "New to Lahti",
			"/images/users/user-6.png", "Recently moved to Lahti and looking for company."),
		u("user-7", "Hanna", "Laine", "hanna.laine@email.com", "password123", "Pilates Instructor",
			"/images/users/user-7.jpg", "Certified pilates instructor running beginner sessions."),
		u("user-8", "Sofia", "Koskinen", "sofia.koskinen@email.com", "password123", "Hiking Organizer",
			"/images/users/user-8.jpg", "Mother of three who organizes hiking groups."),
		u("user-9", "Elina", "Rantanen", "elina.rantanen@email.com", "password123", "Yoga Enthusiast",
			"/images/users/user-9.jpg", "Shares calm, mindful yoga practice with other moms."),
	}
}

func demoActivities(now time.Time) []entity.Activity {
	today := now.Format("2006-01-02")
	created := time.Date(2026, time.January, 21, 0, 0, 0, 0, time.UTC).Unix()
	a := func(id, title, category, location string, duration, capacity int, hour, creator, image, description string) entity.Activity {
		return entity.Activity{
			ID: id, Title: title, Category: category, Location: location,
			Duration: duration, NumParticipants: capacity, Date: today, Hour: hour,
			Status: entity.ActivityActive, CreatorID: creator, CreatedAt: created,
			Image: image, Description: description,
		}
	}
	return []entity.Activity{
		a("yoga-1", "Morning Mama Yoga", "yoga", "Pikku-Vesijärvi Park, Lahti", 60, 12, "09:00", "user-1",
			"/images/activities/yoga-1.jpg", "Gentle breathing and stretching; babies welcome."),
		a("yoga-2", "Mindful Mom Meditation & Stretch", "yoga", "Radiomäki Park, Lahti", 45, 10, "10:00", "user-2",
			"/images/activities/yoga-2.jpg", "A quiet stretch session for busy mornings."),
		a("yoga-3", "Postnatal Yoga Flow", "yoga", "Lahti Community Centre", 60, 15, "11:00", "user-9",
			"/images/activities/yoga-3.jpg", "Slow flow focused on postnatal recovery."),
		a("yoga-4", "Yoga for Tired Moms", "yoga", "Lahti Family Center", 50, 8, "14:00", "user-2",
			"/images/activities/yoga-4.jpg", "Restorative poses for low-energy days."),
		a("yoga-5", "Weekend Wellness Yoga", "yoga", "Lahti Sports Park Outdoor Area", 60, 20, "09:30", "admin-1",
			"/images/activities/yoga-5.jpg", "Open-air weekend class for all levels."),
		a("yoga-6", "Beginner Mom Yoga", "yoga", "Fellmanni Library Hall, Lahti", 55, 12, "10:30", "user-1",
			"/images/activities/yoga-6.jpg", "First steps into yoga, no experience needed."),
		a("yoga-7", "Evening Relaxation Yoga", "yoga", "Lahti Wellness Studio", 60, 10, "18:00", "user-9",
			"/images/activities/yoga-7.jpg", "Unwind after bedtime routines."),
		a("hiking-1", "Stroller-Friendly Nature Walk", "hiking", "Salpausselkä Trail (Easy Section), Lahti", 75, 15, "10:00", "user-3",
			"/images/activities/hiking-1.jpg", "Flat gravel paths suitable for strollers."),
		a("hiking-2", "Mom & Tot Forest Adventure", "hiking", "Messilä Nature Reserve, Lahti", 90, 12, "11:00", "user-8",
			"/images/activities/hiking-2.jpg", "Forest walk with short stops for the little ones."),
		a("hiking-3", "Lakeside Walking Group", "hiking", "Vesijärvi Lakeside Path, Lahti", 60, 18, "14:00", "user-3",
			"/images/activities/hiking-3.jpg", "Easy-paced walk along the lake shore."),
		a("pilates-1", "Core Restore Pilates", "pilates", "Lahti Family Wellness Center", 50, 10, "09:30", "user-7",
			"/images/activities/pilates-1.jpg", "Core work for rebuilding strength after birth."),
		a("pilates-2", "Gentle Mat Pilates for Moms", "pilates", "Laune Family Park, Lahti", 45, 12, "10:30", "user-5",
			"/images/activities/pilates-2.jpg", "Mat pilates at a gentle pace."),
		a("pilates-3", "Postnatal Pilates Recovery", "pilates", "Lahti Community Health Centre", 45, 8, "13:00", "user-7",
			"/images/activities/pilates-3.jpg", "Guided recovery exercises with an instructor."),
		a("pilates-4", "Pilates for Busy Moms", "pilates", "Lahti Adult Education Centre", 45, 10, "15:00", "admin-1",
			"/images/activities/pilates-4.jpg", "Efficient full-body session."),
		a("pilates-5", "Strength & Stretch Pilates", "pilates", "Lahti Sports Center Studio", 60, 12, "16:00", "user-5",
			"/images/activities/pilates-5.jpg", "Strength moves followed by a long stretch."),
	}
}

func demoParticipants(now int64) []entity.Participant {
	p := func(userID, activityID string, daysAgo int64) entity.Participant {
		return entity.Participant{UserID: userID, ActivityID: activityID, JoinedAt: now - daysAgo*day}
	}
	return []entity.Participant{
		p("user-1", "yoga-1", 5),
		p("user-1", "hiking-1", 3),
		p("user-1", "pilates-1", 2),
		p("user-2", "yoga-4", 4),
		p("user-2", "hiking-2", 2),
		p("user-2", "pilates-2", 1),
		p("user-3", "yoga-5", 6),
		p("user-3", "hiking-1", 4),
		p("user-3", "pilates-3", 1),
	}
}
