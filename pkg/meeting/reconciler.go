package meeting

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"dailymeet_backend/internal/model"
)

// MaxSyncDays çok günlü senkronizasyonda kabul edilen en geniş aralık.
const MaxSyncDays = 90

var (
	ErrMeetingNotFound = errors.New("meeting not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrRangeTooLarge   = fmt.Errorf("sync range exceeds %d days", MaxSyncDays)
	ErrInvalidRange    = errors.New("sync range end is before start")
	ErrProvider        = errors.New("calendar provider error")
)

// Event takvim sağlayıcısından okunan/sağlayıcıya yazılan etkinliğin
// sağlayıcıdan bağımsız görünümü.
type Event struct {
	ID          string
	Title       string
	Description string
	Link        string
	Start       time.Time
	End         time.Time
}

// EventProvider harici takvim sağlayıcısı (Google Calendar vb.).
type EventProvider interface {
	ListEvents(ctx context.Context, day time.Time, keyword string) ([]Event, error)
	CreateEvent(ctx context.Context, ev Event) (*Event, error)
}

// Options bir günün toplantısı için yapılandırma.
type Options struct {
	Platform    string
	StartHour   int
	StartMinute int
	Duration    time.Duration
	Title       string
	Description string
	Keyword     string
	UserIDs     []uint
	UseCalendar bool
	CreatedBy   string
}

// GetOrCreate verilen takvim günü için tam olarak bir toplantı kaydı bulur
// ya da oluşturur. Kayıt varsa ve takvim sağlayıcısına danışılıyorsa,
// alan-alan karşılaştırma sonucu fark varsa değişken alanlar tazelenir;
// mevcut kullanıcı eklentilerine hiçbir durumda dokunulmaz. Sağlayıcı
// hatası tazeleme yolunda ölümcül değildir, oluşturma yolunda ise öyledir.
func GetOrCreate(ctx context.Context, db *gorm.DB, provider EventProvider, day time.Time, opts Options) (*model.Meeting, bool, error) {
	day = truncateToDay(day)

	var m model.Meeting
	err := db.Where("date = ?", datatypes.Date(day)).First(&m).Error
	if err == nil {
		if opts.UseCalendar && provider != nil {
			if ev, perr := findEvent(ctx, provider, day, opts.Keyword); perr != nil {
				// Tazeleme sırasında sağlayıcı hatası ölümcül değil,
				// kayıtlı veriyle devam edilir.
				log.Printf("calendar lookup failed for %s, using stored meeting: %v", day.Format("2006-01-02"), perr)
			} else if ev != nil && needsUpdate(&m, ev) {
				applyEvent(&m, ev)
				if serr := db.Save(&m).Error; serr != nil {
					return nil, false, serr
				}
			}
		}
		if aerr := attachUsers(db, &m, opts.UserIDs); aerr != nil {
			return nil, false, aerr
		}
		return &m, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), opts.StartHour, opts.StartMinute, 0, 0, day.Location())
	m = model.Meeting{
		Date:        datatypes.Date(day),
		Platform:    opts.Platform,
		StartTime:   start,
		EndTime:     start.Add(opts.Duration),
		Title:       opts.Title,
		Description: opts.Description,
		CreatedBy:   opts.CreatedBy,
		IsDefault:   true,
	}

	if opts.UseCalendar && provider != nil {
		ev, perr := findEvent(ctx, provider, day, opts.Keyword)
		if perr != nil {
			return nil, false, fmt.Errorf("%w: %v", ErrProvider, perr)
		}
		if ev == nil {
			ev, perr = provider.CreateEvent(ctx, Event{
				Title:       opts.Title,
				Description: opts.Description,
				Start:       start,
				End:         start.Add(opts.Duration),
			})
			if perr != nil {
				return nil, false, fmt.Errorf("%w: %v", ErrProvider, perr)
			}
		}
		applyEvent(&m, ev)
	} else {
		m.Link = FallbackLink(day, opts.Title)
	}

	if cerr := db.Create(&m).Error; cerr != nil {
		return nil, false, cerr
	}
	if aerr := attachUsers(db, &m, opts.UserIDs); aerr != nil {
		return nil, false, aerr
	}
	return &m, true, nil
}

// AttachUser kullanıcıyı toplantıya ekler. Zaten ekliyse no-op;
// kimliklerden biri çözülemezse NotFound döner.
func AttachUser(db *gorm.DB, meetingID, userID uint) error {
	var m model.Meeting
	if err := db.First(&m, meetingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMeetingNotFound
		}
		return err
	}
	var u model.User
	if err := db.First(&u, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	var count int64
	if err := db.Table("meeting_users").
		Where("meeting_id = ? AND user_id = ?", m.ID, u.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Model(&m).Association("Users").Append(&u)
}

// RemoveOrphans sadece calendar-sync kaynaklı ve sağlayıcıda karşılığı
// kalmamış toplantıları siler. Admin ya da cron kaynaklı toplantılar
// hiçbir zaman silinmez.
func RemoveOrphans(ctx context.Context, db *gorm.DB, provider EventProvider, day time.Time, keyword string) (int, error) {
	events, err := provider.ListEvents(ctx, truncateToDay(day), keyword)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	return deleteOrphans(db, truncateToDay(day), events)
}

func deleteOrphans(db *gorm.DB, day time.Time, events []Event) (int, error) {
	known := make(map[string]bool, len(events))
	for _, ev := range events {
		known[ev.ID] = true
	}

	var candidates []model.Meeting
	err := db.Where("date = ? AND created_by = ?", datatypes.Date(day), model.CreatedByCalendarSync).
		Find(&candidates).Error
	if err != nil {
		return 0, err
	}

	deleted := 0
	for i := range candidates {
		m := &candidates[i]
		if m.ExternalID != "" && known[m.ExternalID] {
			continue
		}
		if err := db.Model(m).Association("Users").Clear(); err != nil {
			return deleted, err
		}
		// Soft delete date değerini satırda bırakır ve unique index aynı
		// gün için yeni kayıt açılmasını engeller; o yüzden kalıcı silinir.
		if err := db.Unscoped().Delete(m).Error; err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

// SyncResult çok günlü senkronizasyonun kısmi başarı sayaçları.
type SyncResult struct {
	Processed int      `json:"processed"`
	Created   int      `json:"created"`
	Updated   int      `json:"updated"`
	Deleted   int      `json:"deleted"`
	Errors    []string `json:"errors"`
}

// SyncRange [start, end] aralığındaki her günü sırayla takvim
// sağlayıcısıyla eşitler. Bir günün hatası kaydedilir ve sonraki
// günlerin işlenmesini durdurmaz.
func SyncRange(ctx context.Context, db *gorm.DB, provider EventProvider, start, end time.Time, opts Options) (SyncResult, error) {
	var res SyncResult

	start = truncateToDay(start)
	end = truncateToDay(end)
	if end.Before(start) {
		return res, ErrInvalidRange
	}
	if int(end.Sub(start).Hours()/24)+1 > MaxSyncDays {
		return res, ErrRangeTooLarge
	}

	opts.UseCalendar = true
	opts.CreatedBy = model.CreatedByCalendarSync

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if err := syncDay(ctx, db, provider, d, opts, &res); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", d.Format("2006-01-02"), err))
			continue
		}
		res.Processed++
	}
	return res, nil
}

func syncDay(ctx context.Context, db *gorm.DB, provider EventProvider, day time.Time, opts Options, res *SyncResult) error {
	events, err := provider.ListEvents(ctx, day, opts.Keyword)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProvider, err)
	}

	if len(events) > 0 {
		ev := events[0]
		var m model.Meeting
		ferr := db.Where("date = ?", datatypes.Date(day)).First(&m).Error
		switch {
		case ferr == nil:
			if needsUpdate(&m, &ev) {
				applyEvent(&m, &ev)
				if serr := db.Save(&m).Error; serr != nil {
					return serr
				}
				res.Updated++
			}
		case errors.Is(ferr, gorm.ErrRecordNotFound):
			m = model.Meeting{
				Date:      datatypes.Date(day),
				Platform:  opts.Platform,
				CreatedBy: model.CreatedByCalendarSync,
				IsDefault: true,
			}
			applyEvent(&m, &ev)
			if cerr := db.Create(&m).Error; cerr != nil {
				return cerr
			}
			res.Created++
		default:
			return ferr
		}
	}

	deleted, derr := deleteOrphans(db, day, events)
	res.Deleted += deleted
	return derr
}

// FallbackLink takvim sağlayıcısı kullanılmadığında gün için
// deterministik bir katılım linki üretir.
func FallbackLink(day time.Time, title string) string {
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte("dailymeet/"+day.Format("2006-01-02")))
	return fmt.Sprintf("https://meet.jit.si/%s-%s", slug.Make(title), id.String()[:8])
}

// needsUpdate kayıtlı toplantı ile sağlayıcı etkinliği arasında alan-alan
// eşitsizlik kontrolü yapar.
func needsUpdate(m *model.Meeting, ev *Event) bool {
	return m.Link != ev.Link ||
		!m.StartTime.Equal(ev.Start) ||
		!m.EndTime.Equal(ev.End) ||
		m.Title != ev.Title ||
		m.Description != ev.Description ||
		m.ExternalID != ev.ID
}

func applyEvent(m *model.Meeting, ev *Event) {
	m.ExternalID = ev.ID
	m.Link = ev.Link
	m.StartTime = ev.Start
	m.EndTime = ev.End
	m.Title = ev.Title
	m.Description = ev.Description
}

func findEvent(ctx context.Context, provider EventProvider, day time.Time, keyword string) (*Event, error) {
	events, err := provider.ListEvents(ctx, day, keyword)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}
	return &events[0], nil
}

func attachUsers(db *gorm.DB, m *model.Meeting, userIDs []uint) error {
	for _, id := range userIDs {
		if err := AttachUser(db, m.ID, id); err != nil {
			return err
		}
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
